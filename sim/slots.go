package sim

import (
	"fmt"
	"sort"
)

// Handles into the SlotTable. Each is an index into the table of its kind, so a
// handle stays valid when the backing slices grow.
type (
	InputRef      int
	OutputRef     int
	RealOutputRef int
	RealParamRef  int
	IntParamRef   int
)

// NoOutput marks an event that writes no output when it fires.
const NoOutput OutputRef = -1

// Causality classifies a scalar variable the way the frontend sees it.
type Causality string

const (
	CausalityInput     Causality = "input"
	CausalityOutput    Causality = "output"
	CausalityParameter Causality = "parameter"
)

// ScalarType is the value type of a scalar variable.
type ScalarType string

const (
	TypeInteger ScalarType = "Integer"
	TypeReal    ScalarType = "Real"
)

// Variable describes one scalar variable of the model.
type Variable struct {
	Name           string
	ValueReference int
	Causality      Causality
	Type           ScalarType
	Start          float64 // integer variables carry their start value converted to float64
}

type intSlot struct {
	name  string
	value int64
	start int64
}

type realSlot struct {
	name  string
	value float64
	start float64
}

// varIndex locates a named variable inside the table.
type varIndex struct {
	ref       int
	causality Causality
	typ       ScalarType
	index     int
}

// SlotTable owns every scalar variable exchanged with the frontend: integer
// inputs and outputs (message IDs), real outputs and the parameters.
// Thread-safety: NOT thread-safe. Owned by a single Backend.
type SlotTable struct {
	intInputs   []intSlot
	intOutputs  []intSlot
	realOutputs []realSlot
	realParams  []realSlot
	intParams   []intSlot

	byName  map[string]varIndex
	nextRef int
}

// NewSlotTable creates an empty SlotTable.
func NewSlotTable() *SlotTable {
	return &SlotTable{byName: make(map[string]varIndex)}
}

func (s *SlotTable) register(name string, c Causality, typ ScalarType, index int) {
	if name == "" {
		panic("sim: scalar variable name must not be empty")
	}
	if _, exists := s.byName[name]; exists {
		panic(fmt.Sprintf("sim: scalar variable %q declared twice", name))
	}
	s.byName[name] = varIndex{ref: s.nextRef, causality: c, typ: typ, index: index}
	s.nextRef++
}

// AddIntegerInput declares an integer input (a message-ID inbox).
func (s *SlotTable) AddIntegerInput(name string) InputRef {
	s.register(name, CausalityInput, TypeInteger, len(s.intInputs))
	s.intInputs = append(s.intInputs, intSlot{name: name})
	return InputRef(len(s.intInputs) - 1)
}

// AddIntegerOutput declares an integer output (a message-ID outbox).
func (s *SlotTable) AddIntegerOutput(name string) OutputRef {
	s.register(name, CausalityOutput, TypeInteger, len(s.intOutputs))
	s.intOutputs = append(s.intOutputs, intSlot{name: name})
	return OutputRef(len(s.intOutputs) - 1)
}

// AddRealOutput declares a real output.
func (s *SlotTable) AddRealOutput(name string) RealOutputRef {
	s.register(name, CausalityOutput, TypeReal, len(s.realOutputs))
	s.realOutputs = append(s.realOutputs, realSlot{name: name})
	return RealOutputRef(len(s.realOutputs) - 1)
}

// AddRealParameter declares a real parameter with a start value.
func (s *SlotTable) AddRealParameter(name string, start float64) RealParamRef {
	s.register(name, CausalityParameter, TypeReal, len(s.realParams))
	s.realParams = append(s.realParams, realSlot{name: name, value: start, start: start})
	return RealParamRef(len(s.realParams) - 1)
}

// AddIntegerParameter declares an integer parameter with a start value.
func (s *SlotTable) AddIntegerParameter(name string, start int64) IntParamRef {
	s.register(name, CausalityParameter, TypeInteger, len(s.intParams))
	s.intParams = append(s.intParams, intSlot{name: name, value: start, start: start})
	return IntParamRef(len(s.intParams) - 1)
}

// Input returns the current value of an integer input.
func (s *SlotTable) Input(ref InputRef) int64 { return s.intInputs[ref].value }

// SetInput writes an integer input.
func (s *SlotTable) SetInput(ref InputRef, v int64) { s.intInputs[ref].value = v }

// Output returns the current value of an integer output.
func (s *SlotTable) Output(ref OutputRef) int64 { return s.intOutputs[ref].value }

// SetOutput writes an integer output. Writing NoOutput is a no-op.
func (s *SlotTable) SetOutput(ref OutputRef, v int64) {
	if ref == NoOutput {
		return
	}
	s.intOutputs[ref].value = v
}

// RealOutput returns the current value of a real output.
func (s *SlotTable) RealOutput(ref RealOutputRef) float64 { return s.realOutputs[ref].value }

// SetRealOutput writes a real output.
func (s *SlotTable) SetRealOutput(ref RealOutputRef, v float64) { s.realOutputs[ref].value = v }

// RealParam returns the current value of a real parameter.
func (s *SlotTable) RealParam(ref RealParamRef) float64 { return s.realParams[ref].value }

// SetRealParam writes a real parameter.
func (s *SlotTable) SetRealParam(ref RealParamRef, v float64) { s.realParams[ref].value = v }

// IntParam returns the current value of an integer parameter.
func (s *SlotTable) IntParam(ref IntParamRef) int64 { return s.intParams[ref].value }

// SetIntParam writes an integer parameter.
func (s *SlotTable) SetIntParam(ref IntParamRef, v int64) { s.intParams[ref].value = v }

// OutputName returns the declared name of an integer output, or "" for NoOutput.
func (s *SlotTable) OutputName(ref OutputRef) string {
	if ref == NoOutput || int(ref) >= len(s.intOutputs) {
		return ""
	}
	return s.intOutputs[ref].name
}

// NumOutputs returns the number of integer outputs.
func (s *SlotTable) NumOutputs() int { return len(s.intOutputs) }

// ResetInputs clears all integer inputs. Inputs are one-shot per event iteration.
func (s *SlotTable) ResetInputs() {
	for i := range s.intInputs {
		s.intInputs[i].value = 0
	}
}

// ResetOutputs clears all integer outputs. Real outputs keep their values.
func (s *SlotTable) ResetOutputs() {
	for i := range s.intOutputs {
		s.intOutputs[i].value = 0
	}
}

func (s *SlotTable) lookup(name string) (varIndex, error) {
	vi, ok := s.byName[name]
	if !ok {
		return varIndex{}, fmt.Errorf("unknown scalar variable %q", name)
	}
	return vi, nil
}

// SetInteger writes an integer input or integer parameter by name.
func (s *SlotTable) SetInteger(name string, v int64) error {
	vi, err := s.lookup(name)
	if err != nil {
		return err
	}
	if vi.typ != TypeInteger {
		return fmt.Errorf("scalar variable %q is %s, not Integer", name, vi.typ)
	}
	switch vi.causality {
	case CausalityInput:
		s.intInputs[vi.index].value = v
	case CausalityParameter:
		s.intParams[vi.index].value = v
	default:
		return fmt.Errorf("scalar variable %q is an output and cannot be set", name)
	}
	return nil
}

// GetInteger reads any integer variable by name.
func (s *SlotTable) GetInteger(name string) (int64, error) {
	vi, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	if vi.typ != TypeInteger {
		return 0, fmt.Errorf("scalar variable %q is %s, not Integer", name, vi.typ)
	}
	switch vi.causality {
	case CausalityInput:
		return s.intInputs[vi.index].value, nil
	case CausalityOutput:
		return s.intOutputs[vi.index].value, nil
	default:
		return s.intParams[vi.index].value, nil
	}
}

// SetReal writes a real parameter by name.
func (s *SlotTable) SetReal(name string, v float64) error {
	vi, err := s.lookup(name)
	if err != nil {
		return err
	}
	if vi.typ != TypeReal {
		return fmt.Errorf("scalar variable %q is %s, not Real", name, vi.typ)
	}
	if vi.causality != CausalityParameter {
		return fmt.Errorf("scalar variable %q is an %s and cannot be set", name, vi.causality)
	}
	s.realParams[vi.index].value = v
	return nil
}

// GetReal reads any real variable by name.
func (s *SlotTable) GetReal(name string) (float64, error) {
	vi, err := s.lookup(name)
	if err != nil {
		return 0, err
	}
	if vi.typ != TypeReal {
		return 0, fmt.Errorf("scalar variable %q is %s, not Real", name, vi.typ)
	}
	if vi.causality == CausalityOutput {
		return s.realOutputs[vi.index].value, nil
	}
	return s.realParams[vi.index].value, nil
}

// Has reports whether a variable with the given name is declared.
func (s *SlotTable) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Variables returns the model description sorted by value reference.
func (s *SlotTable) Variables() []Variable {
	vars := make([]Variable, 0, len(s.byName))
	for name, vi := range s.byName {
		v := Variable{Name: name, ValueReference: vi.ref, Causality: vi.causality, Type: vi.typ}
		switch {
		case vi.causality == CausalityParameter && vi.typ == TypeReal:
			v.Start = s.realParams[vi.index].start
		case vi.causality == CausalityParameter && vi.typ == TypeInteger:
			v.Start = float64(s.intParams[vi.index].start)
		}
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].ValueReference < vars[j].ValueReference })
	return vars
}
