// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import "fmt"

// Process is a behavioural block: a decision tree rooted at RootCase
// and a list of synchronization rules.
type Process struct {
	Name       string
	Attributes Attributes
	RootCase   CaseRule
	Syncs      []*SyncRule
}

// AddSync appends a synchronization rule.
func (p *Process) AddSync(syncType SyncType, signal SigSpec) *SyncRule {
	sync := &SyncRule{Type: syncType, Signal: signal}
	p.Syncs = append(p.Syncs, sync)
	return sync
}

// CaseRule is one node of the decision tree. The owning switch selects
// it when the switch signal matches any Compare entry; an empty
// Compare list is the default case. Actions apply first, then
// Switches are evaluated in order.
type CaseRule struct {
	Compare    []SigSpec
	Actions    []SigSig
	Switches   []*SwitchRule
	Attributes Attributes
}

// AddSwitch appends a switch on signal to c.
func (c *CaseRule) AddSwitch(signal SigSpec) *SwitchRule {
	sw := &SwitchRule{Signal: signal, Attributes: Attributes{}}
	c.Switches = append(c.Switches, sw)
	return sw
}

// AddAction appends the assignment left := right.
func (c *CaseRule) AddAction(left, right SigSpec) {
	c.Actions = append(c.Actions, SigSig{Left: left, Right: right})
}

// SwitchRule selects among Cases by comparing Signal. Case order is
// priority order: the first matching case wins.
type SwitchRule struct {
	Signal     SigSpec
	Cases      []*CaseRule
	Attributes Attributes
}

// AddCase appends a case matching any of compare.
func (s *SwitchRule) AddCase(compare ...SigSpec) *CaseRule {
	c := &CaseRule{Compare: compare, Attributes: Attributes{}}
	s.Cases = append(s.Cases, c)
	return c
}

// SyncType identifies when a sync rule fires.
type SyncType uint8

const (
	ST0 SyncType = iota // level low
	ST1                 // level high
	STp                 // positive edge
	STn                 // negative edge
	STe                 // both edges
	STa                 // always
	STg                 // global clock
	STi                 // initialization
)

// Valid reports whether t is one of the defined sync types.
func (t SyncType) Valid() bool {
	return t <= STi
}

// String returns the RTLIL keyword for t.
func (t SyncType) String() string {
	switch t {
	case ST0:
		return "low"
	case ST1:
		return "high"
	case STp:
		return "posedge"
	case STn:
		return "negedge"
	case STe:
		return "edge"
	case STa:
		return "always"
	case STg:
		return "global"
	case STi:
		return "init"
	default:
		return fmt.Sprintf("sync(%d)", uint8(t))
	}
}

// SyncRule applies Actions and MemWriteActions when its trigger
// condition holds.
type SyncRule struct {
	Type            SyncType
	Signal          SigSpec
	Actions         []SigSig
	MemWriteActions []MemWriteAction
}

// AddAction appends the registered assignment left := right.
func (s *SyncRule) AddAction(left, right SigSpec) {
	s.Actions = append(s.Actions, SigSig{Left: left, Right: right})
}

// MemWriteAction writes Data to memory MemID at Address under Enable.
// PriorityMask orders this write against other ports of the same
// memory.
type MemWriteAction struct {
	MemID        string
	Address      SigSpec
	Data         SigSpec
	Enable       SigSpec
	PriorityMask Const
	Attributes   Attributes
}

// CaseDepth returns the maximum nesting depth of the tree rooted at c,
// where a case with no switches has depth 1. The walk uses an explicit
// stack so that arbitrarily deep trees cannot exhaust the goroutine
// stack.
func (c *CaseRule) CaseDepth() int {
	type frame struct {
		node  *CaseRule
		depth int
	}
	deepest := 0
	stack := []frame{{node: c, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, top.depth)
		for _, sw := range top.node.Switches {
			for _, child := range sw.Cases {
				stack = append(stack, frame{node: child, depth: top.depth + 1})
			}
		}
	}
	return deepest
}
