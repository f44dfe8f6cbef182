package breathing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_PatternTable(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		phase       Phase
		duration    int
		instruction string
		next        Phase
	}{
		{PhaseInhale, 4, "Inhale", PhaseHold},
		{PhaseHold, 4, "Hold Breath", PhaseExhale},
		{PhaseExhale, 6, "Exhale", PhasePause},
		{PhasePause, 2, "Pause", PhaseInhale},
	}
	require.Len(t, cfg.Phases, len(cases))
	for _, tc := range cases {
		spec, ok := cfg.Phases[tc.phase]
		require.True(t, ok, "missing phase %s", tc.phase)
		assert.Equal(t, tc.duration, spec.DurationSeconds, tc.phase)
		assert.Equal(t, tc.instruction, spec.Instruction, tc.phase)
		assert.Equal(t, tc.next, spec.Next, tc.phase)
	}
}

func TestTransition_CycleClosesAfterFourSteps(t *testing.T) {
	cfg := DefaultConfig()
	for _, start := range []Phase{PhaseInhale, PhaseHold, PhaseExhale, PhasePause} {
		p := start
		for i := 0; i < 4; i++ {
			p, _, _ = Transition(cfg, p)
		}
		assert.Equal(t, start, p, "cycle from %s", start)
	}
}

func TestTransition_ReturnsEnteredPhaseSpec(t *testing.T) {
	cfg := DefaultConfig()
	for from, spec := range cfg.Phases {
		next, dur, instr := Transition(cfg, from)
		assert.Equal(t, spec.Next, next)
		assert.Equal(t, cfg.Phases[next].DurationSeconds, dur)
		assert.Equal(t, cfg.Phases[next].Instruction, instr)
	}
}

func TestConfig_Order(t *testing.T) {
	assert.Equal(t,
		[]Phase{PhaseInhale, PhaseHold, PhaseExhale, PhasePause},
		DefaultConfig().Order(),
	)
}
