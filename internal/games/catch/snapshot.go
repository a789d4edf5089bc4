package catch

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the observable game state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Steps     uint64
	SimTime   float64
	TimeScale float64
	Level     int
	Phase     int
	Lives     int
	Collected int
	Total     int
	AgentX    float64
	AgentZ    float64

	// Bodies flattened as (ID, X, Y, Z, VX, VY, VZ) per body
	BodyCount int
	BodyData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bodies := g.sim.Bodies()
	data := make([]float64, 0, len(bodies)*7)
	for _, b := range bodies {
		data = append(data, float64(b.ID),
			b.Center.X(), b.Center.Y(), b.Center.Z(),
			b.Velocity.X(), b.Velocity.Y(), b.Velocity.Z())
	}

	agent := g.rules.Agent()
	return Snapshot{
		Steps:     g.sim.StepsTaken(),
		SimTime:   g.sim.Time(),
		TimeScale: g.sim.TimeScale(),
		Level:     int(g.flow.Level()),
		Phase:     int(g.flow.Phase()),
		Lives:     g.rules.Lives(),
		Collected: g.rules.Collected(),
		Total:     g.rules.Total(),
		AgentX:    agent.X(),
		AgentZ:    agent.Z(),
		BodyCount: len(bodies),
		BodyData:  data,
	}
}

// Hash returns an FNV-1a hash over the snapshot's exact bit patterns.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck
	}

	put(s.Steps)
	put(math.Float64bits(s.SimTime))
	put(math.Float64bits(s.TimeScale))
	for _, v := range []int{s.Level, s.Phase, s.Lives, s.Collected, s.Total, s.BodyCount} {
		put(uint64(v))
	}
	put(math.Float64bits(s.AgentX))
	put(math.Float64bits(s.AgentZ))
	for _, v := range s.BodyData {
		put(math.Float64bits(v))
	}
	return h.Sum64()
}
