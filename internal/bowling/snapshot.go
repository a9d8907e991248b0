package bowling

import "math"

// Snapshot captures the session for determinism checks.
// Positions are stored in fixed point so equal runs hash equally.
type Snapshot struct {
	Frames     int
	Steps      int
	Round      int
	Score      int
	State      int
	Awaiting   bool
	Remainder  int64   // nanoseconds
	RecordData []int64 // x, y, z per record in micro-units
}

const fixedScale = 1e6

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	data := make([]int64, 0, s.scene.Records.Len()*3)
	for i := 0; i < s.scene.Records.Len(); i++ {
		rec, _ := s.scene.Records.Get(RecordID(i))
		p := rec.Position()
		data = append(data,
			int64(math.Round(p.X()*fixedScale)),
			int64(math.Round(p.Y()*fixedScale)),
			int64(math.Round(p.Z()*fixedScale)),
		)
	}

	return Snapshot{
		Frames:     s.frames,
		Steps:      s.steps,
		Round:      s.round,
		Score:      s.score,
		State:      int(s.state),
		Awaiting:   s.awaiting,
		Remainder:  int64(math.Round(s.acc.Remainder() * 1e9)),
		RecordData: data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Frames)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Steps)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remainder) //#nosec G115 -- hash computation
	if snap.Awaiting {
		h = h*31 + 1
	}

	for _, v := range snap.RecordData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
