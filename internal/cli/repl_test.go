package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) List(_ context.Context, a []string) error      { return f.record("list", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error      { return f.record("show", a) }
func (f *fakeExec) Import(_ context.Context, a []string) error    { return f.record("import", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error    { return f.record("delete", a) }
func (f *fakeExec) Tags(_ context.Context, a []string) error      { return f.record("tags", a) }
func (f *fakeExec) AddTag(_ context.Context, a []string) error    { return f.record("addtag", a) }
func (f *fakeExec) DeleteTag(_ context.Context, a []string) error { return f.record("deltag", a) }
func (f *fakeExec) TagPass(_ context.Context, a []string) error   { return f.record("tag", a) }
func (f *fakeExec) UntagPass(_ context.Context, a []string) error { return f.record("untag", a) }
func (f *fakeExec) Groups(_ context.Context, a []string) error    { return f.record("groups", a) }
func (f *fakeExec) AddGroup(_ context.Context, a []string) error  { return f.record("addgroup", a) }
func (f *fakeExec) DeleteGroup(_ context.Context, a []string) error {
	return f.record("delgroup", a)
}
func (f *fakeExec) GroupPass(_ context.Context, a []string) error { return f.record("group", a) }
func (f *fakeExec) UngroupPass(_ context.Context, a []string) error {
	return f.record("ungroup", a)
}
func (f *fakeExec) Sort(_ context.Context, a []string) error      { return f.record("sort", a) }
func (f *fakeExec) Move(_ context.Context, a []string) error      { return f.record("move", a) }
func (f *fakeExec) Barcode(_ context.Context, a []string) error   { return f.record("barcode", a) }
func (f *fakeExec) Updatable(_ context.Context, a []string) error { return f.record("updatable", a) }
func (f *fakeExec) Watch(_ context.Context, a []string) error     { return f.record("watch", a) }
func (f *fakeExec) Archive(_ context.Context, a []string, archived bool) error {
	if archived {
		return f.record("archive", a)
	}
	return f.record("unarchive", a)
}

func run(t *testing.T, exec execIface, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "> " }, sc, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommandsInOrder(t *testing.T) {
	exec := &fakeExec{}
	run(t, exec,
		"help",
		"l archived",
		"import a.json",
		"",
		"tag p1 3",
		"archive p1",
		"unarchive p1",
		"sort Manual",
		"move p1 p2",
		"barcode p1 out.png 100 50",
		"foobar",
		"exit",
		"list",
	)

	assert.Equal(t, []string{
		"list archived",
		"import a.json",
		"tag p1 3",
		"archive p1",
		"unarchive p1",
		"sort Manual",
		"move p1 p2",
		"barcode p1 out.png 100 50",
	}, exec.calls)
}

func TestRunREPL_ReportsErrorsAndUsage(t *testing.T) {
	exec := &fakeExec{err: errors.New("boom")}
	out := run(t, exec, "show x", "quit")
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "Bye!")

	exec = &fakeExec{err: errUsage}
	out = run(t, exec, "l")
	assert.Contains(t, out, "Usage: "+usage["list"])
}

func TestRunREPL_UnknownCommandAndHelp(t *testing.T) {
	out := run(t, &fakeExec{}, "frobnicate", "help")
	assert.Contains(t, out, "Unknown command: frobnicate")
	for _, c := range commandOrder {
		assert.Contains(t, out, usage[c])
	}
}

func TestRunREPL_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(ctx, exec, func() string { return "> " }, bufio.NewScanner(strings.NewReader("list\n")), &out)
	assert.Empty(t, exec.calls)
}
