// Package sif mines typed binary relations (SIF edges) from a model graph.
//
// A relation type is a tag, a description, a directed flag and the ordered
// structural variants that detect it (see package miner). Mining a type runs
// every variant, unions their pairs and deduplicates the resulting edges.
package sif

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dd0wney/cluso-sif/pkg/miner"
)

var (
	// ErrUnknownRelationType is the sentinel of UnknownRelationTypeError
	ErrUnknownRelationType = errors.New("unknown relation type")

	// ErrUnknownVariant is returned by NewRegistry for a variant name with no
	// built-in pattern.
	ErrUnknownVariant = errors.New("unknown variant")
	ErrDuplicateTag   = errors.New("duplicate relation type")
	ErrInvalidTag     = errors.New("invalid relation type tag")
)

// UnknownRelationTypeError names a tag that no relation type carries. It is
// logged, never fatal: mining an unknown tag yields no edges.
type UnknownRelationTypeError struct {
	Tag string
}

func (e *UnknownRelationTypeError) Error() string {
	return fmt.Sprintf("unknown relation type %q", e.Tag)
}

func (e *UnknownRelationTypeError) Is(target error) bool {
	return target == ErrUnknownRelationType
}

// RelationType is one kind of SIF edge.
type RelationType struct {
	Tag         string
	Description string
	Directed    bool
	Variants    []string // variant names, in mining order
}

// Name returns the upper case enum style name of the type, for example
// CONTROLS_STATE_CHANGE_OF.
func (rt RelationType) Name() string {
	return NameFor(rt.Tag)
}

// TagFor converts an enum style name to its tag:
// CONTROLS_STATE_CHANGE_OF -> controls-state-change-of.
func TagFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// NameFor converts a tag to its enum style name.
func NameFor(tag string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(tag)), "-", "_")
}

var tagFormat = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

// Registry is an immutable set of relation types with their built miners.
type Registry struct {
	types  []RelationType
	byTag  map[string]int
	miners map[string][]miner.Miner
}

// NewRegistry builds the miners of every type. It fails on a malformed or
// duplicate tag, on an unknown variant name and on any pattern definition
// error.
func NewRegistry(types ...RelationType) (*Registry, error) {
	r := &Registry{
		types:  make([]RelationType, 0, len(types)),
		byTag:  make(map[string]int, len(types)),
		miners: make(map[string][]miner.Miner, len(types)),
	}
	built := make(map[string]miner.Miner)

	for _, rt := range types {
		if !tagFormat.MatchString(rt.Tag) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTag, rt.Tag)
		}
		if _, dup := r.byTag[rt.Tag]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTag, rt.Tag)
		}

		ms := make([]miner.Miner, 0, len(rt.Variants))
		for _, name := range rt.Variants {
			m, ok := built[name]
			if !ok {
				v, found := miner.Lookup(name)
				if !found {
					return nil, fmt.Errorf("relation type %s: %w: %s", rt.Tag, ErrUnknownVariant, name)
				}
				var err error
				if m, err = v.Miner(); err != nil {
					return nil, fmt.Errorf("relation type %s: %w", rt.Tag, err)
				}
				built[name] = m
			}
			ms = append(ms, m)
		}

		rt.Variants = append([]string(nil), rt.Variants...)
		r.byTag[rt.Tag] = len(r.types)
		r.types = append(r.types, rt)
		r.miners[rt.Tag] = ms
	}
	return r, nil
}

// Lookup returns the relation type with the given tag.
func (r *Registry) Lookup(tag string) (RelationType, bool) {
	i, ok := r.byTag[tag]
	if !ok {
		return RelationType{}, false
	}
	return r.types[i].clone(), true
}

// TypeOf resolves either a tag or an enum style name. It returns false for
// anything else.
func (r *Registry) TypeOf(s string) (RelationType, bool) {
	return r.Lookup(TagFor(s))
}

// Tags returns every tag in registration order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.types))
	for i, rt := range r.types {
		out[i] = rt.Tag
	}
	return out
}

// Miners returns the miners of a type in variant order.
func (r *Registry) Miners(tag string) []miner.Miner {
	return append([]miner.Miner(nil), r.miners[tag]...)
}

// VariantOwner returns the relation type a variant belongs to. A variant
// shared between types resolves to the first one registered.
func (r *Registry) VariantOwner(name string) (RelationType, miner.Miner, bool) {
	for _, rt := range r.types {
		for i, v := range rt.Variants {
			if v == name {
				return rt.clone(), r.miners[rt.Tag][i], true
			}
		}
	}
	return RelationType{}, nil, false
}

// Resolve looks name up as a tag, an enum style name or a variant name and
// returns the miners to run for it.
func (r *Registry) Resolve(name string) (RelationType, []miner.Miner, bool) {
	if rt, ok := r.TypeOf(name); ok {
		return rt, r.Miners(rt.Tag), true
	}
	if rt, m, ok := r.VariantOwner(name); ok {
		return rt, []miner.Miner{m}, true
	}
	return RelationType{}, nil, false
}

// Catalog returns a copy of every relation type in registration order.
func (r *Registry) Catalog() []RelationType {
	out := make([]RelationType, len(r.types))
	for i, rt := range r.types {
		out[i] = rt.clone()
	}
	return out
}

func (rt RelationType) clone() RelationType {
	rt.Variants = append([]string(nil), rt.Variants...)
	return rt
}

// BuiltinTypes returns the definitions of the standard relation types.
func BuiltinTypes() []RelationType {
	return []RelationType{
		{
			Tag:         "controls-state-change-of",
			Description: "First protein is controlling a reaction that changes the state of the second protein.",
			Directed:    true,
			Variants: []string{
				miner.ControlsStateChange,
				miner.ControlsStateChangeButIsParticipant,
				miner.ControlsStateChangeBothControllerAndParticipant,
				miner.ControlsStateChangeThroughControllingSM,
				miner.ControlsStateChangeThroughBindingSM,
				miner.ControlsStateChangeThroughDegradation,
			},
		},
		{
			Tag:         "controls-transport-of",
			Description: "First protein is controlling a reaction that changes the cellular location of the second protein.",
			Directed:    true,
			Variants:    []string{miner.ControlsTransport},
		},
		{
			Tag:         "controls-phosphorylation-of",
			Description: "First protein is controlling a reaction that changes the phosphorylation status of the second protein.",
			Directed:    true,
			Variants:    []string{miner.ControlsPhosphorylation},
		},
		{
			Tag:         "controls-expression-of",
			Description: "First protein is controlling a conversion or a template reaction that changes expression of the second protein.",
			Directed:    true,
			Variants:    []string{miner.ControlsExpressionWithTemplateReaction, miner.ControlsExpressionWithConversion},
		},
		{
			Tag:         "catalysis-precedes",
			Description: "First protein is controlling a reaction whose output molecule is input to another reaction controlled by the second protein.",
			Directed:    true,
			Variants:    []string{miner.CatalysisPrecedes},
		},
		{
			Tag:         "in-complex-with",
			Description: "Proteins appear as members of the same complex.",
			Variants:    []string{miner.InComplexWith},
		},
		{
			Tag:         "interacts-with",
			Description: "Proteins appear as participants of the same MolecularInteraction.",
			Variants:    []string{miner.InteractsWith},
		},
		{
			Tag:         "neighbor-of",
			Description: "Proteins appear as participants or controllers of the same interaction.",
			Variants:    []string{miner.NeighborOf},
		},
		{
			Tag:         "consumption-controlled-by",
			Description: "The small molecule is consumed by a reaction that is controlled by a protein.",
			Directed:    true,
			Variants:    []string{miner.ConsumptionControlledBy},
		},
		{
			Tag:         "controls-production-of",
			Description: "The protein is controlling a reaction of which the small molecule is an output.",
			Directed:    true,
			Variants:    []string{miner.ControlsProductionOf},
		},
		{
			Tag:         "controls-transport-of-chemical",
			Description: "The protein is controlling a reaction that changes cellular location of the small molecule.",
			Directed:    true,
			Variants:    []string{miner.ControlsTransportOfChemical},
		},
		{
			Tag:         "chemical-affects",
			Description: "A small molecule has an effect on a protein.",
			Directed:    true,
			Variants:    []string{miner.ChemicalAffectsThroughControl, miner.ChemicalAffectsThroughBinding},
		},
		{
			Tag:         "reacts-with",
			Description: "A small molecule is input to a biochemical reaction together with another small molecule. None of the molecules are also output.",
			Variants:    []string{miner.ReactsWith},
		},
		{
			Tag:         "used-to-produce",
			Description: "A small molecule is input to a biochemical reaction that produces another small molecule. Both small molecules appear at only one side of the reaction.",
			Directed:    true,
			Variants:    []string{miner.UsedToProduce},
		},
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// DefaultRegistry returns the registry of the built-in types. It is built on
// first use and panics if a built-in pattern is malformed.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(BuiltinTypes()...)
		if err != nil {
			panic(fmt.Sprintf("sif: built-in registry: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
