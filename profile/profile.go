// Package profile provides a simple way to generate pprof compatible quarc gate profiles.
//
// Since a quantum.API operates in a single go-routine, this package is also
// NOT thread safe and is meant to be called in the same go-routine.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/google/pprof/profile"
	"github.com/quarclib/quarc/logger"
)

var (
	sessions       []*Profile // active sessions
	activeSessions uint32
)

// Profile represents an active gate profiling session.
type Profile struct {
	// defaults to ./quarc.pprof
	// if blank, profile is not written to disk
	filePath string

	// actual pprof profile struct
	// details on pprof format: https://github.com/google/pprof/blob/main/proto/README.md
	pprof profile.Profile

	functions map[string]*profile.Function
	locations map[uint64]*profile.Location

	chDone chan struct{}
}

// Option defines configuration Options for Profile.
type Option func(*Profile)

// WithPath controls the profile destination file. If blank, profile is not written.
//
// Defaults to ./quarc.pprof.
func WithPath(path string) Option {
	return func(p *Profile) {
		p.filePath = path
	}
}

// WithNoOutput indicates that the profile is not going to be written to disk.
//
// This is equivalent to WithPath("")
func WithNoOutput() Option {
	return func(p *Profile) {
		p.filePath = ""
	}
}

// Start creates a new active profiling session. When Stop() is called, this
// session is removed from active profiling sessions and may be serialized to
// disk as a pprof compatible file (see WithPath option).
//
// All calls to Start() and Stop() are meant to be executed in the go routine
// that drives the quantum.API.
//
// It is allowed to create multiple overlapping profiling sessions.
func Start(options ...Option) *Profile {
	// start the worker first time a profiling session starts.
	onceInit.Do(func() {
		go worker()
	})

	p := Profile{
		functions: make(map[string]*profile.Function),
		locations: make(map[uint64]*profile.Location),
		filePath:  filepath.Join(".", "quarc.pprof"),
		chDone:    make(chan struct{}),
	}
	p.pprof.SampleType = []*profile.ValueType{{
		Type: "gates",
		Unit: "count",
	}}

	for _, option := range options {
		option(&p)
	}

	log := logger.Logger()
	if p.filePath == "" {
		log.Warn().Msg("quarc gate profiling enabled [not writing to disk]")
	} else {
		log.Info().Str("path", p.filePath).Msg("quarc gate profiling enabled")
	}

	// add the session to active sessions
	chCommands <- command{p: &p}
	atomic.AddUint32(&activeSessions, 1)

	return &p
}

// Stop removes the profile from active sessions and may write the pprof file
// to disk. See WithPath option.
func (p *Profile) Stop() {
	log := logger.Logger()

	if p.chDone == nil {
		log.Fatal().Msg("quarc gate profile stopped multiple times")
	}

	// ask worker routine to remove ourselves from the active sessions
	chCommands <- command{p: p, remove: true}

	// wait for worker routine to remove us.
	<-p.chDone
	p.chDone = nil

	if p.filePath != "" {
		f, err := os.Create(p.filePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create quarc gate profile")
		}
		if err := p.pprof.Write(f); err != nil {
			log.Error().Err(err).Msg("writing profile")
		}
		f.Close()
		log.Info().Str("path", p.filePath).Msg("quarc gate profiling disabled")
	} else {
		log.Warn().Msg("quarc gate profiling disabled [not writing to disk]")
	}
}

// NbGates returns the number of collected samples (gates) by the profile session.
func (p *Profile) NbGates() int {
	return len(p.pprof.Sample)
}

// Top returns a per-function gate count summary, heaviest first.
func (p *Profile) Top() string {
	counts := make(map[string]int64)
	for _, s := range p.pprof.Sample {
		if len(s.Location) == 0 {
			continue
		}
		loc := s.Location[0]
		if len(loc.Line) == 0 {
			continue
		}
		counts[loc.Line[0].Function.Name] += s.Value[0]
	}
	type row struct {
		name  string
		count int64
	}
	rows := make([]row, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, row{name, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})
	var sb strings.Builder
	fmt.Fprintf(&sb, "%12s  %s\n", "gates", "function")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%12d  %s\n", r.count, r.name)
	}
	return sb.String()
}

// RecordGate adds a sample (with count == 1) to all the active profiling sessions.
func RecordGate() {
	if n := atomic.LoadUint32(&activeSessions); n == 0 {
		return // do nothing, no active session.
	}

	// collect the stack and send it async to the worker
	pc := make([]uintptr, 20)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	chCommands <- command{pc: pc}
}

func (p *Profile) getLocation(frame *runtime.Frame) *profile.Location {
	l, ok := p.locations[uint64(frame.PC)]
	if !ok {
		// first let's see if we have the function.
		f, ok := p.functions[frame.File+frame.Function]
		if !ok {
			fe := strings.Split(frame.Function, "/")
			fName := fe[len(fe)-1]
			f = &profile.Function{
				ID:         uint64(len(p.functions) + 1),
				Name:       fName,
				SystemName: frame.Function,
				Filename:   frame.File,
			}

			p.functions[frame.File+frame.Function] = f
			p.pprof.Function = append(p.pprof.Function, f)
		}

		l = &profile.Location{
			ID:   uint64(len(p.locations) + 1),
			Line: []profile.Line{{Function: f, Line: int64(frame.Line)}},
		}
		p.locations[uint64(frame.PC)] = l
		p.pprof.Location = append(p.pprof.Location, l)
	}

	return l
}
