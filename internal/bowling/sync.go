package bowling

import (
	"fmt"

	"github.com/vovakirdan/tui-bowling/internal/physics"
)

// syncPoses copies the pose of every bound body into its record and
// caches the ball body. Bodies without a back-reference belong to someone
// else and are skipped.
func (s *Session) syncPoses() {
	ball := physics.NoBody

	for _, id := range s.world.Bodies() {
		ref, ok := s.world.BackReference(id)
		if !ok {
			continue
		}
		rec, ok := s.scene.Records.Get(RecordID(ref))
		if !ok {
			panic(fmt.Sprintf("bowling: body %d refers to record %d outside the arena of %d", id, ref, s.scene.Records.Len()))
		}

		rec.transform = s.world.Pose(id).Mat4()

		if rec.role == RoleBall {
			if ball != physics.NoBody {
				panic(fmt.Sprintf("bowling: bodies %d and %d both carry the ball role", ball, id))
			}
			ball = id
		}
	}

	if ball != physics.NoBody && s.ball == physics.NoBody {
		s.logger.Debug("ball bound", "body", ball)
	}
	if ball != physics.NoBody {
		s.ball = ball
	}
}

// pinBodies returns the pin bodies, checking each is still bound to its record.
func (s *Session) pinBodies() []physics.BodyID {
	ids := make([]physics.BodyID, len(s.scene.Pins))
	for i, recID := range s.scene.Pins {
		rec, _ := s.scene.Records.Get(recID)
		ref, ok := s.world.BackReference(rec.body)
		if !ok || RecordID(ref) != recID {
			panic(fmt.Sprintf("bowling: pin %d (body %d) has lost its back-reference", i, rec.body))
		}
		ids[i] = rec.body
	}
	return ids
}
