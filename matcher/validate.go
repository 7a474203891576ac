package matcher

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/arr-ai/rulecheck/grammar"
)

// Backend decides whether a whole message belongs to a grammar's language.
// Not matching is a false result, never an error.
type Backend interface {
	Match(message string) (bool, error)
}

var (
	_ Backend = (*Pattern)(nil)
	_ Backend = (*Matcher)(nil)
)

// Kind selects a Backend.
type Kind int

const (
	// Auto uses a Pattern unless the grammar is cyclic.
	Auto Kind = iota
	Finite
	Recursive
)

var kindNames = map[Kind]string{
	Auto:      "auto",
	Finite:    "finite",
	Recursive: "recursive",
}

func (k Kind) String() string {
	if name, has := kindNames[k]; has {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return Auto, fmt.Errorf("unknown backend %q (want auto, finite or recursive)", s)
}

// Select checks the store and builds the requested Backend for it. An empty
// store yields a Backend that matches nothing. A missing start rule or any
// reference to an undefined rule is an error.
func Select(store grammar.Store, start grammar.RuleID, kind Kind) (Backend, error) {
	log := logrus.WithFields(logrus.Fields{"start": start, "backend": kind})
	if store.Count() == 0 {
		log.Debug("empty grammar")
		return MustCompile(store, start), nil
	}
	if _, err := store.Lookup(start); err != nil {
		return nil, err
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}
	if kind == Auto {
		kind = Finite
		if cycles := store.Cycles(start); len(cycles) > 0 {
			log.WithField("cycles", len(cycles)).Debug("grammar is cyclic")
			kind = Recursive
		}
	}
	log.WithField("selected", kind).Debug("backend selected")
	switch kind {
	case Finite:
		return Compile(store, start)
	case Recursive:
		return New(store, start), nil
	}
	return nil, fmt.Errorf("unknown backend: %v", kind)
}

// Validator runs a Backend over a list of messages. With Workers > 1 the
// messages are matched concurrently; results are always in message order.
type Validator struct {
	Backend Backend
	Workers int
}

// Results reports, for each message, whether it is valid.
func (v Validator) Results(messages []string) ([]bool, error) {
	results := make([]bool, len(messages))
	if v.Workers <= 1 || len(messages) <= 1 {
		for i, msg := range messages {
			ok, err := v.Backend.Match(msg)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i+1, err)
			}
			results[i] = ok
		}
		return results, nil
	}

	var (
		wg       sync.WaitGroup
		firstErr error
		errIndex = len(messages)
		mu       sync.Mutex
	)
	indexes := make(chan int)
	for w := 0; w < v.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				ok, err := v.Backend.Match(messages[i])
				if err != nil {
					mu.Lock()
					if i < errIndex {
						errIndex, firstErr = i, err
					}
					mu.Unlock()
					continue
				}
				results[i] = ok
			}
		}()
	}
	for i := range messages {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("message %d: %w", errIndex+1, firstErr)
	}
	return results, nil
}

// Count returns the number of valid messages.
func (v Validator) Count(messages []string) (int, error) {
	results, err := v.Results(messages)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, ok := range results {
		if ok {
			n++
		}
	}
	logrus.WithFields(logrus.Fields{"messages": len(messages), "valid": n}).Debug("validated")
	return n, nil
}

// CrossCheck returns the indexes of the messages on which a and b disagree.
func CrossCheck(a, b Backend, messages []string) ([]int, error) {
	as, err := Validator{Backend: a}.Results(messages)
	if err != nil {
		return nil, err
	}
	bs, err := Validator{Backend: b}.Results(messages)
	if err != nil {
		return nil, err
	}
	var diffs []int
	for i := range messages {
		if as[i] != bs[i] {
			diffs = append(diffs, i)
		}
	}
	return diffs, nil
}
