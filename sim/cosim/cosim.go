// Package cosim drives a Backend the way a co-simulation master does: it
// follows the published next event time, injects periodic messages on the
// configured inputs and collects what appears on the observed outputs.
package cosim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cosim-backend/cosim-backend/sim"
)

// SenderConfig describes a periodic message source on one integer input.
// The first message is sent at StartTime + Offset + Period, carrying FirstID
// (1 if unset); each later one carries the next ID.
type SenderConfig struct {
	Input   string
	Period  float64
	FirstID int64
	Offset  float64
}

// Config describes one orchestrated run.
type Config struct {
	StartTime float64
	StopTime  float64
	Senders   []SenderConfig
	Observe   []string // integer outputs to collect; empty observes all of them
}

// Message is a message injected on an input.
type Message struct {
	Time  float64
	Input string
	ID    int64
}

// Delivery is a non-zero value read from an observed output after an event
// iteration.
type Delivery struct {
	Time    float64
	Output  string
	Subject int64
}

// Latency pairs a sent message with its delivery.
type Latency struct {
	Subject  int64
	Input    string
	Output   string
	Sent     float64
	Received float64
}

// Delay returns Received - Sent.
func (l Latency) Delay() float64 { return l.Received - l.Sent }

// Result is the outcome of Run.
type Result struct {
	Sent      []Message
	Delivered []Delivery
	Steps     int // DoStep calls issued
}

// Latency matches every delivery with the earliest unmatched message carrying
// the same subject. Deliveries without a matching message are skipped.
func (r *Result) Latency() []Latency {
	var out []Latency
	for i, m := range r.match() {
		if m == nil {
			continue
		}
		d := r.Delivered[i]
		out = append(out, Latency{
			Subject:  d.Subject,
			Input:    m.Input,
			Output:   d.Output,
			Sent:     m.Time,
			Received: d.Time,
		})
	}
	return out
}

// match returns, per delivery, the sent message it answers or nil.
func (r *Result) match() []*Message {
	pending := make(map[int64][]*Message)
	for i := range r.Sent {
		m := &r.Sent[i]
		pending[m.ID] = append(pending[m.ID], m)
	}
	matched := make([]*Message, len(r.Delivered))
	for i, d := range r.Delivered {
		if queue := pending[d.Subject]; len(queue) > 0 {
			matched[i] = queue[0]
			pending[d.Subject] = queue[1:]
		}
	}
	return matched
}

// ErrInvalidConfig is wrapped by every configuration error returned by Run.
var ErrInvalidConfig = errors.New("invalid co-simulation config")

type sender struct {
	SenderConfig
	next float64
	id   int64
}

// Run drives an initialized Backend from cfg.StartTime until the next
// synchronization point would reach cfg.StopTime. Each iteration advances
// time to the earlier of the next event and the next due message, injects
// due messages and iterates once at the new time. A backend error aborts the
// run; the partial Result is returned with it.
func Run(b *sim.Backend, cfg Config) (*Result, error) {
	senders, err := buildSenders(b.Slots(), cfg)
	if err != nil {
		return nil, err
	}
	observe, err := observedOutputs(b.Slots(), cfg.Observe)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	t := cfg.StartTime
	for t < cfg.StopTime {
		next := b.NextEventTime()
		target := math.Min(next, nextSendTime(senders))
		step := target - t
		if t+step >= cfg.StopTime {
			break
		}

		if err := b.DoStep(t, step); err != nil {
			return res, err
		}
		res.Steps++
		t = target

		for _, s := range senders {
			if math.Abs(t-s.next) >= sim.SyncEpsilon {
				continue
			}
			if err := b.Slots().SetInteger(s.Input, s.id); err != nil {
				return res, err
			}
			logrus.Debugf("[t=%g] send %d on %s", t, s.id, s.Input)
			res.Sent = append(res.Sent, Message{Time: t, Input: s.Input, ID: s.id})
			s.id++
			s.next += s.Period
		}

		if err := b.DoStep(t, 0); err != nil {
			return res, err
		}
		res.Steps++

		for _, name := range observe {
			v, err := b.Slots().GetInteger(name)
			if err != nil {
				return res, err
			}
			if v != 0 {
				logrus.Debugf("[t=%g] receive %d on %s", t, v, name)
				res.Delivered = append(res.Delivered, Delivery{Time: t, Output: name, Subject: v})
			}
		}
	}
	logrus.Infof("co-simulation done at t=%g: %d sent, %d delivered, %d steps",
		t, len(res.Sent), len(res.Delivered), res.Steps)
	return res, nil
}

func buildSenders(slots *sim.SlotTable, cfg Config) ([]*sender, error) {
	if math.IsNaN(cfg.StopTime) || math.IsInf(cfg.StopTime, 0) || cfg.StopTime < cfg.StartTime {
		return nil, fmt.Errorf("%w: stop time %g must be finite and not before start time %g",
			ErrInvalidConfig, cfg.StopTime, cfg.StartTime)
	}
	senders := make([]*sender, 0, len(cfg.Senders))
	for _, sc := range cfg.Senders {
		if sc.Period <= 0 || math.IsNaN(sc.Period) {
			return nil, fmt.Errorf("%w: sender %q: period must be positive, got %g", ErrInvalidConfig, sc.Input, sc.Period)
		}
		if sc.Offset < 0 {
			return nil, fmt.Errorf("%w: sender %q: offset must be non-negative, got %g", ErrInvalidConfig, sc.Input, sc.Offset)
		}
		if !isIntegerVar(slots, sc.Input, sim.CausalityInput) {
			return nil, fmt.Errorf("%w: sender %q: no such integer input", ErrInvalidConfig, sc.Input)
		}
		id := sc.FirstID
		if id == 0 {
			id = 1
		}
		senders = append(senders, &sender{
			SenderConfig: sc,
			next:         cfg.StartTime + sc.Offset + sc.Period,
			id:           id,
		})
	}
	return senders, nil
}

func observedOutputs(slots *sim.SlotTable, names []string) ([]string, error) {
	if len(names) == 0 {
		for _, v := range slots.Variables() {
			if v.Causality == sim.CausalityOutput && v.Type == sim.TypeInteger {
				names = append(names, v.Name)
			}
		}
		return names, nil
	}
	for _, name := range names {
		if !isIntegerVar(slots, name, sim.CausalityOutput) {
			return nil, fmt.Errorf("%w: observe %q: no such integer output", ErrInvalidConfig, name)
		}
	}
	return names, nil
}

func isIntegerVar(slots *sim.SlotTable, name string, c sim.Causality) bool {
	for _, v := range slots.Variables() {
		if v.Name == name {
			return v.Causality == c && v.Type == sim.TypeInteger
		}
	}
	return false
}

func nextSendTime(senders []*sender) float64 {
	t := math.Inf(1)
	for _, s := range senders {
		t = math.Min(t, s.next)
	}
	return t
}
