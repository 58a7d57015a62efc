package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// front end
	FrontInfo       Code = 1000
	FrontReported   Code = 1001
	FrontFatal      Code = 1002
	FrontBadHandle  Code = 1003
	FrontOutOfLine  Code = 1004
	FrontUnexpected Code = 1005

	// symbol model
	SymInfo                Code = 2000
	SymNameConflict        Code = 2001
	SymAnonymous           Code = 2002
	SymUnsupportedOperator Code = 2003
	SymKeywordRecord       Code = 2004
	SymBadDefault          Code = 2005

	// inheritance
	InhInfo           Code = 3000
	InhUnresolvedBase Code = 3001
	InhCycle          Code = 3002

	// binding
	BindInfo            Code = 4000
	BindUnsupportedType Code = 4001
	BindIgnoredOverload Code = 4002
	BindNoConstructor   Code = 4003
	BindUnusedRename    Code = 4004
	BindHostConflict    Code = 4005

	// configuration
	CfgInfo    Code = 5000
	CfgProblem Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		FrontInfo:              "Front end information",
		FrontReported:          "Front end diagnostic",
		FrontFatal:             "Front end reported a fatal diagnostic",
		FrontBadHandle:         "Dangling type handle in declaration stream",
		FrontOutOfLine:         "Out-of-line definition ignored",
		FrontUnexpected:        "Unexpected declaration kind",
		SymInfo:                "Symbol information",
		SymNameConflict:        "Name conflict",
		SymAnonymous:           "Anonymous declaration skipped",
		SymUnsupportedOperator: "Unsupported operator",
		SymKeywordRecord:       "Type name is a host keyword",
		SymBadDefault:          "Default value is not a literal",
		InhInfo:                "Inheritance information",
		InhUnresolvedBase:      "Unresolved base class",
		InhCycle:               "Inheritance cycle",
		BindInfo:               "Binding information",
		BindUnsupportedType:    "Unsupported type",
		BindIgnoredOverload:    "Overload ignored",
		BindNoConstructor:      "No bindable constructor",
		BindUnusedRename:       "Rename entry matched nothing",
		BindHostConflict:       "Host name conflict",
		CfgInfo:                "Configuration information",
		CfgProblem:             "Configuration problem",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FE%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYM%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("INH%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
