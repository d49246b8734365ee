package clients

import (
	"github.com/chirper/social-system/internal/core/ports"
	"github.com/chirper/social-system/internal/rpc"
)

// Reverter emits the compensating revert-create-user event over AMQP.
// An earlier design awaited the revert reply; it was deliberately replaced
// with emit-only semantics, trading a narrow inconsistency window for a
// simpler failure path on the registration hot path.
type Reverter struct {
	emitter *rpc.Emitter
}

func NewReverter(emitter *rpc.Emitter) *Reverter {
	return &Reverter{emitter: emitter}
}

func (r *Reverter) EmitRevertCreateUser(in ports.RegisterUserInput) {
	r.emitter.Emit(rpc.PatternUserRevertCreate, in)
}
