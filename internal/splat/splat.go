// Package splat expands clustered short flags into canonical long-form
// effects.
//
// A cluster is a single token such as "-bdv" standing for the flags
// --build --detach --volumes. Letters may appear in any order, any
// subset, and any repetition; repeats are no-ops. Each command owns its
// own letter alphabet, so the same letter can mean different things for
// different commands.
package splat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedFlag is returned when a token that can only be a flag
// (a single unknown letter or an unknown long form) does not match the
// command's flag table.
var ErrMalformedFlag = errors.New("unrecognized flag")

// Effect is the canonical behavior a flag activates, e.g. "build" or
// "detach". Effects are deduplicated: activating one twice is the same
// as once.
type Effect string

// Flag describes one short/long flag pair scoped to a command.
type Flag struct {
	Letter byte   // short letter, 0 if the flag is long-form only
	Long   string // long name without the leading dashes
	Effect Effect
	// TakesValue marks a flag that consumes the following token as its
	// value. Value flags are matched exactly and never participate in
	// clusters.
	TakesValue bool
}

// Spec is the validated flag table for one command.
type Spec struct {
	byLetter map[byte]Flag
	byLong   map[string]Flag
}

// NewSpec builds a Spec, enforcing that no letter maps to two effects.
func NewSpec(flags ...Flag) (*Spec, error) {
	s := &Spec{
		byLetter: make(map[byte]Flag),
		byLong:   make(map[string]Flag),
	}
	for _, f := range flags {
		if f.Long == "" {
			return nil, fmt.Errorf("flag for effect %q has no long name", f.Effect)
		}
		if _, ok := s.byLong[f.Long]; ok {
			return nil, fmt.Errorf("duplicate long flag --%s", f.Long)
		}
		s.byLong[f.Long] = f
		if f.Letter != 0 {
			if _, ok := s.byLetter[f.Letter]; ok {
				return nil, fmt.Errorf("duplicate short flag -%c", f.Letter)
			}
			s.byLetter[f.Letter] = f
		}
	}
	return s, nil
}

// MustSpec is NewSpec for package-level flag tables.
func MustSpec(flags ...Flag) *Spec {
	s, err := NewSpec(flags...)
	if err != nil {
		panic(err)
	}
	return s
}

// Result is the outcome of normalizing one argument list.
type Result struct {
	effects    map[Effect]bool
	Values     map[Effect]string
	Positional []string
}

// Has reports whether the invocation activated the given effect.
func (r *Result) Has(e Effect) bool { return r.effects[e] }

// Effects returns the activated effect set. Order is unspecified.
func (r *Result) Effects() []Effect {
	out := make([]Effect, 0, len(r.effects))
	for e := range r.effects {
		out = append(out, e)
	}
	return out
}

func (r *Result) activate(e Effect) { r.effects[e] = true }

// Normalize classifies every raw argument as a long flag, an exact
// short flag, a cluster, a flag value, or a positional argument, and
// returns the activated effect set plus the positionals in order.
//
// Policy for unmatched dash tokens: a single unknown letter ("-x") or
// an unknown long form ("--frobnicate") fails with ErrMalformedFlag,
// since such a token cannot be anything but a mistyped flag. A
// multi-letter token containing any character outside the command's
// alphabet falls through as a positional, because container and
// service names legitimately start with a dash-free word but branch
// names and images never collide with the short alphabets.
func (s *Spec) Normalize(args []string) (*Result, error) {
	res := &Result{
		effects: make(map[Effect]bool),
		Values:  make(map[Effect]string),
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "--") && len(arg) > 2 {
			f, ok := s.byLong[arg[2:]]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrMalformedFlag, arg)
			}
			if f.TakesValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag --%s requires a value", f.Long)
				}
				i++
				res.Values[f.Effect] = args[i]
			}
			res.activate(f.Effect)
			continue
		}

		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			res.Positional = append(res.Positional, arg)
			continue
		}

		letters := arg[1:]
		if len(letters) == 1 {
			f, ok := s.byLetter[letters[0]]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrMalformedFlag, arg)
			}
			if f.TakesValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("flag -%c requires a value", f.Letter)
				}
				i++
				res.Values[f.Effect] = args[i]
			}
			res.activate(f.Effect)
			continue
		}

		cluster, ok := s.splatCluster(letters)
		if !ok {
			res.Positional = append(res.Positional, arg)
			continue
		}
		for _, e := range cluster {
			res.activate(e)
		}
	}
	return res, nil
}

// splatCluster maps every letter of the token through the alphabet.
// It reports false if any letter is unmapped or belongs to a
// value-carrying flag; such tokens are not clusters.
func (s *Spec) splatCluster(letters string) ([]Effect, bool) {
	effects := make([]Effect, 0, len(letters))
	for i := 0; i < len(letters); i++ {
		f, ok := s.byLetter[letters[i]]
		if !ok || f.TakesValue {
			return nil, false
		}
		effects = append(effects, f.Effect)
	}
	return effects, true
}
