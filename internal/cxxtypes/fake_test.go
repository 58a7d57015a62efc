package cxxtypes

// fakeType is a hand-wired NativeType for resolver tests.
type fakeType struct {
	spelling  string
	kind      Kind
	isConst   bool
	canonical *fakeType
	pointee   *fakeType
	elem      *fakeType
	count     int64
	args      []*fakeType
	probes    *int
}

func (f *fakeType) Spelling() string { return f.spelling }
func (f *fakeType) Kind() Kind       { return f.kind }
func (f *fakeType) IsConst() bool    { return f.isConst }

func (f *fakeType) Canonical() (NativeType, error) {
	if f.canonical == nil {
		return f, nil
	}
	return f.canonical, nil
}

func (f *fakeType) Pointee() (NativeType, error) {
	if f.probes != nil {
		*f.probes++
	}
	if f.pointee == nil {
		return nil, ErrNotApplicable
	}
	return f.pointee, nil
}

func (f *fakeType) Element() (NativeType, error) {
	if f.elem == nil {
		return nil, ErrNotApplicable
	}
	return f.elem, nil
}

func (f *fakeType) ElementCount() (int64, error) {
	if f.elem == nil {
		return 0, ErrNotApplicable
	}
	return f.count, nil
}

func (f *fakeType) NumTemplateArgs() int { return len(f.args) }

func (f *fakeType) TemplateArg(i int) (NativeType, error) {
	if i < 0 || i >= len(f.args) || f.args[i] == nil {
		return nil, ErrNotApplicable
	}
	return f.args[i], nil
}
