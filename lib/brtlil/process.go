// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// caseLocation identifies a case node by its chain of (switch, case)
// indices from the root. Frames share their parent's location, so the
// human-readable path is only built when something fails.
type caseLocation struct {
	parent      *caseLocation
	switchIndex int
	caseIndex   int
}

func (location *caseLocation) String() string {
	var segments []string
	for at := location; at != nil; at = at.parent {
		segments = append(segments, fmt.Sprintf("switch %d case %d", at.switchIndex, at.caseIndex))
	}
	if len(segments) == 0 {
		return "root case"
	}
	slices.Reverse(segments)
	return strings.Join(segments, " / ")
}

// locate attaches the case location to err.
func (location *caseLocation) locate(err error) error {
	return within(err, "%s", location)
}

func depthFault(maxDepth int) error {
	return formatFault("case tree is nested deeper than %d levels", maxDepth)
}

// encodeCaseTree converts the tree rooted at root without native
// recursion. Every child slice is allocated at its final length before
// its elements are filled in, so pointers into it stay valid while
// frames wait on the stack.
func encodeCaseTree(module *rtlil.Module, root *rtlil.CaseRule, maxDepth int) (wire.CaseRule, error) {
	type frame struct {
		source   *rtlil.CaseRule
		target   *wire.CaseRule
		depth    int
		location *caseLocation
	}

	var encoded wire.CaseRule
	stack := []frame{{source: root, target: &encoded, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > maxDepth {
			return wire.CaseRule{}, top.location.locate(depthFault(maxDepth))
		}
		if err := encodeCaseBody(module, top.source, top.target); err != nil {
			return wire.CaseRule{}, top.location.locate(err)
		}
		if len(top.source.Switches) == 0 {
			continue
		}

		top.target.Switches = make([]wire.SwitchRule, len(top.source.Switches))
		for switchIndex, sourceSwitch := range top.source.Switches {
			targetSwitch := &top.target.Switches[switchIndex]
			signal, err := encodeSigSpec(module, sourceSwitch.Signal)
			if err != nil {
				return wire.CaseRule{}, top.location.locate(within(err, "switch %d signal", switchIndex))
			}
			attributes, err := encodeAttributes(sourceSwitch.Attributes)
			if err != nil {
				return wire.CaseRule{}, top.location.locate(within(err, "switch %d", switchIndex))
			}
			targetSwitch.Signal = signal
			targetSwitch.Attributes = attributes
			if len(sourceSwitch.Cases) == 0 {
				continue
			}
			targetSwitch.Cases = make([]wire.CaseRule, len(sourceSwitch.Cases))
			for caseIndex, child := range sourceSwitch.Cases {
				stack = append(stack, frame{
					source: child,
					target: &targetSwitch.Cases[caseIndex],
					depth:  top.depth + 1,
					location: &caseLocation{
						parent:      top.location,
						switchIndex: switchIndex,
						caseIndex:   caseIndex,
					},
				})
			}
		}
	}
	return encoded, nil
}

// encodeCaseBody fills everything of a case except its switches.
func encodeCaseBody(module *rtlil.Module, source *rtlil.CaseRule, target *wire.CaseRule) error {
	for i, compare := range source.Compare {
		encoded, err := encodeSigSpec(module, compare)
		if err != nil {
			return within(err, "compare %d", i)
		}
		target.Compare = append(target.Compare, encoded)
	}
	actions, err := encodeActions(module, source.Actions)
	if err != nil {
		return err
	}
	attributes, err := encodeAttributes(source.Attributes)
	if err != nil {
		return err
	}
	target.Actions = actions
	target.Attributes = attributes
	return nil
}

// decodeCaseTree rebuilds the tree described by message into root,
// mirroring encodeCaseTree.
func decodeCaseTree(module *rtlil.Module, message *wire.CaseRule, root *rtlil.CaseRule, maxDepth int) error {
	type frame struct {
		source   *wire.CaseRule
		target   *rtlil.CaseRule
		depth    int
		location *caseLocation
	}

	stack := []frame{{source: message, target: root, depth: 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > maxDepth {
			return top.location.locate(depthFault(maxDepth))
		}
		if err := decodeCaseBody(module, top.source, top.target); err != nil {
			return top.location.locate(err)
		}
		if len(top.source.Switches) == 0 {
			continue
		}

		top.target.Switches = make([]*rtlil.SwitchRule, len(top.source.Switches))
		for switchIndex := range top.source.Switches {
			sourceSwitch := &top.source.Switches[switchIndex]
			signal, err := decodeSigSpec(module, sourceSwitch.Signal)
			if err != nil {
				return top.location.locate(within(err, "switch %d signal", switchIndex))
			}
			targetSwitch := &rtlil.SwitchRule{Signal: signal, Attributes: rtlil.Attributes{}}
			if err := decodeAttributes(targetSwitch.Attributes, sourceSwitch.Attributes); err != nil {
				return top.location.locate(within(err, "switch %d", switchIndex))
			}
			top.target.Switches[switchIndex] = targetSwitch
			if len(sourceSwitch.Cases) == 0 {
				continue
			}
			targetSwitch.Cases = make([]*rtlil.CaseRule, len(sourceSwitch.Cases))
			for caseIndex := range sourceSwitch.Cases {
				child := &rtlil.CaseRule{Attributes: rtlil.Attributes{}}
				targetSwitch.Cases[caseIndex] = child
				stack = append(stack, frame{
					source: &sourceSwitch.Cases[caseIndex],
					target: child,
					depth:  top.depth + 1,
					location: &caseLocation{
						parent:      top.location,
						switchIndex: switchIndex,
						caseIndex:   caseIndex,
					},
				})
			}
		}
	}
	return nil
}

func decodeCaseBody(module *rtlil.Module, source *wire.CaseRule, target *rtlil.CaseRule) error {
	for i, compare := range source.Compare {
		decoded, err := decodeSigSpec(module, compare)
		if err != nil {
			return within(err, "compare %d", i)
		}
		target.Compare = append(target.Compare, decoded)
	}
	actions, err := decodeActions(module, source.Actions)
	if err != nil {
		return err
	}
	target.Actions = actions
	if target.Attributes == nil {
		target.Attributes = rtlil.Attributes{}
	}
	return decodeAttributes(target.Attributes, source.Attributes)
}

func encodeSyncRule(module *rtlil.Module, sync *rtlil.SyncRule) (wire.SyncRule, error) {
	if !sync.Type.Valid() {
		return wire.SyncRule{}, formatFault("unknown sync type %d", uint8(sync.Type))
	}
	signal, err := encodeSigSpec(module, sync.Signal)
	if err != nil {
		return wire.SyncRule{}, within(err, "signal")
	}
	actions, err := encodeActions(module, sync.Actions)
	if err != nil {
		return wire.SyncRule{}, err
	}
	message := wire.SyncRule{
		Type:    int64(sync.Type),
		Signal:  signal,
		Actions: actions,
	}
	for i := range sync.MemWriteActions {
		encoded, err := encodeMemWriteAction(module, &sync.MemWriteActions[i])
		if err != nil {
			return wire.SyncRule{}, within(err, "memwr %d", i)
		}
		message.MemWriteActions = append(message.MemWriteActions, encoded)
	}
	return message, nil
}

func decodeSyncRule(module *rtlil.Module, message wire.SyncRule) (*rtlil.SyncRule, error) {
	if message.Type < 0 || message.Type > int64(rtlil.STi) {
		return nil, formatFault("unknown sync type %d", message.Type)
	}
	signal, err := decodeSigSpec(module, message.Signal)
	if err != nil {
		return nil, within(err, "signal")
	}
	actions, err := decodeActions(module, message.Actions)
	if err != nil {
		return nil, err
	}
	sync := &rtlil.SyncRule{
		Type:    rtlil.SyncType(message.Type),
		Signal:  signal,
		Actions: actions,
	}
	for i, memwr := range message.MemWriteActions {
		decoded, err := decodeMemWriteAction(module, memwr)
		if err != nil {
			return nil, within(err, "memwr %d", i)
		}
		sync.MemWriteActions = append(sync.MemWriteActions, decoded)
	}
	return sync, nil
}

func encodeMemWriteAction(module *rtlil.Module, action *rtlil.MemWriteAction) (wire.MemWriteAction, error) {
	address, err := encodeSigSpec(module, action.Address)
	if err != nil {
		return wire.MemWriteAction{}, within(err, "address")
	}
	data, err := encodeSigSpec(module, action.Data)
	if err != nil {
		return wire.MemWriteAction{}, within(err, "data")
	}
	enable, err := encodeSigSpec(module, action.Enable)
	if err != nil {
		return wire.MemWriteAction{}, within(err, "enable")
	}
	priority, err := encodeConst(action.PriorityMask)
	if err != nil {
		return wire.MemWriteAction{}, within(err, "priority mask")
	}
	attributes, err := encodeAttributes(action.Attributes)
	if err != nil {
		return wire.MemWriteAction{}, err
	}
	return wire.MemWriteAction{
		MemID:        action.MemID,
		Address:      address,
		Data:         data,
		Enable:       enable,
		PriorityMask: priority,
		Attributes:   attributes,
	}, nil
}

func decodeMemWriteAction(module *rtlil.Module, message wire.MemWriteAction) (rtlil.MemWriteAction, error) {
	address, err := decodeSigSpec(module, message.Address)
	if err != nil {
		return rtlil.MemWriteAction{}, within(err, "address")
	}
	data, err := decodeSigSpec(module, message.Data)
	if err != nil {
		return rtlil.MemWriteAction{}, within(err, "data")
	}
	enable, err := decodeSigSpec(module, message.Enable)
	if err != nil {
		return rtlil.MemWriteAction{}, within(err, "enable")
	}
	priority, err := decodeConst(message.PriorityMask)
	if err != nil {
		return rtlil.MemWriteAction{}, within(err, "priority mask")
	}
	action := rtlil.MemWriteAction{
		MemID:        rtlil.EscapeID(message.MemID),
		Address:      address,
		Data:         data,
		Enable:       enable,
		PriorityMask: priority,
		Attributes:   rtlil.Attributes{},
	}
	if err := decodeAttributes(action.Attributes, message.Attributes); err != nil {
		return rtlil.MemWriteAction{}, err
	}
	return action, nil
}

func encodeProcess(module *rtlil.Module, process *rtlil.Process, maxDepth int) (wire.Process, error) {
	root, err := encodeCaseTree(module, &process.RootCase, maxDepth)
	if err != nil {
		return wire.Process{}, err
	}
	attributes, err := encodeAttributes(process.Attributes)
	if err != nil {
		return wire.Process{}, err
	}
	message := wire.Process{
		Name:       process.Name,
		RootCase:   root,
		Attributes: attributes,
	}
	for i, sync := range process.Syncs {
		encoded, err := encodeSyncRule(module, sync)
		if err != nil {
			return wire.Process{}, within(err, "sync %d", i)
		}
		message.Syncs = append(message.Syncs, encoded)
	}
	return message, nil
}

// decodeProcess requires every wire of module to exist already.
func decodeProcess(module *rtlil.Module, key string, message *wire.Process, maxDepth int) error {
	name, err := recordName(key, message.Name, "process")
	if err != nil {
		return err
	}
	process, err := module.AddProcess(name)
	if err != nil {
		return graphFault("%w", err)
	}
	if err := decodeAttributes(process.Attributes, message.Attributes); err != nil {
		return err
	}
	if err := decodeCaseTree(module, &message.RootCase, &process.RootCase, maxDepth); err != nil {
		return err
	}
	for i, sync := range message.Syncs {
		decoded, err := decodeSyncRule(module, sync)
		if err != nil {
			return within(err, "sync %d", i)
		}
		process.Syncs = append(process.Syncs, decoded)
	}
	return nil
}
