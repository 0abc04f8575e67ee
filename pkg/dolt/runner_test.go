package dolt

import (
	"context"
	"os"
)

// fakeRunner scripts dolt invocations for tests. Each call pops the next
// output (and error) off the queue; when an outfile is requested the output
// is written there instead of returned. Every call is recorded.
type fakeRunner struct {
	calls [][]string
	cwds  []string
	outs  []string
	errs  []error

	// hook, when set, observes every call. Tests use it to mimic side
	// effects of the real binary, such as a clone materializing a
	// repository on disk.
	hook func(args []string)
}

func newFakeRunner(outs ...string) *fakeRunner {
	return &fakeRunner{outs: outs}
}

func (f *fakeRunner) Run(ctx context.Context, cwd, outfile string, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	f.cwds = append(f.cwds, cwd)
	if f.hook != nil {
		f.hook(args)
	}

	var out string
	if len(f.outs) > 0 {
		out = f.outs[0]
		f.outs = f.outs[1:]
	}
	var err error
	if len(f.errs) > 0 {
		err = f.errs[0]
		f.errs = f.errs[1:]
	}
	if err != nil {
		return "", err
	}

	if outfile != "" {
		if werr := os.WriteFile(outfile, []byte(out), 0o644); werr != nil {
			return "", werr
		}
		return "", nil
	}
	return out, nil
}

func (f *fakeRunner) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func fakeHandle(f *fakeRunner) *Dolt {
	return newHandle("/repo", WithRunner(f))
}

// branchesCSV is a dolt_branches result with main active at the given hash.
func branchesCSV(rows ...string) string {
	out := "name,hash,latest_committer,latest_committer_email,latest_commit_date,latest_commit_message\n"
	for _, row := range rows {
		out += row + "\n"
	}
	return out
}
