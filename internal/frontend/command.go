package frontend

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"cxxbind/internal/decl"
	"cxxbind/internal/errs"
)

// Command runs an external walker and decodes the stream it prints on
// stdout. The walker is invoked as
//
//	path args... -I dir... flags... -- headers... sources...
type Command struct {
	Path string
	Args []string
	Dir  string
	Env  []string
}

func (c Command) argv(req Request) []string {
	argv := append([]string(nil), c.Args...)
	for _, dir := range req.IncludeDirs {
		argv = append(argv, "-I", dir)
	}
	argv = append(argv, req.Flags...)
	argv = append(argv, "--")
	argv = append(argv, req.Headers...)
	return append(argv, req.Sources...)
}

func (c Command) Parse(ctx context.Context, req Request) (*decl.Stream, error) {
	if c.Path == "" {
		return nil, fatal("", errs.New("front-end command is empty"))
	}
	cmd := exec.CommandContext(ctx, c.Path, c.argv(req)...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	var stdout bytes.Buffer
	var stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = errs.Newf("%s: %s", c.Path, msg)
		}
		return nil, fatal(c.Path, err)
	}
	s, err := decl.DecodeBytes(stdout.Bytes())
	if err != nil {
		return nil, fatal(c.Path, errs.Wrap(err, "walker output"))
	}
	return s, nil
}
