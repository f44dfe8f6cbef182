package breathing

// Phase is one named stage of a breathing cycle.
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
	PhasePause  Phase = "pause"
)

// Instruction shown while no session is running.
const NotStartedInstruction = "Get Ready..."

// PhaseSpec describes how long a phase lasts, what to display and what follows it.
type PhaseSpec struct {
	DurationSeconds int    `json:"duration_seconds"`
	Instruction     string `json:"instruction"`
	Next            Phase  `json:"next"`
}

// Config maps every phase to its duration, instruction and successor. It must form a closed cycle.
type Config struct {
	Start  Phase               `json:"start"`
	Phases map[Phase]PhaseSpec `json:"phases"`
}

// DefaultConfig is the 4-4-6-2 pattern: inhale, hold, exhale, pause.
func DefaultConfig() Config {
	return Config{
		Start: PhaseInhale,
		Phases: map[Phase]PhaseSpec{
			PhaseInhale: {DurationSeconds: 4, Instruction: "Inhale", Next: PhaseHold},
			PhaseHold:   {DurationSeconds: 4, Instruction: "Hold Breath", Next: PhaseExhale},
			PhaseExhale: {DurationSeconds: 6, Instruction: "Exhale", Next: PhasePause},
			PhasePause:  {DurationSeconds: 2, Instruction: "Pause", Next: PhaseInhale},
		},
	}
}

// Order returns the phases in cycle order beginning with the start phase.
func (c Config) Order() []Phase {
	out := make([]Phase, 0, len(c.Phases))
	p := c.Start
	for i := 0; i < len(c.Phases); i++ {
		out = append(out, p)
		p = c.Phases[p].Next
	}
	return out
}

// Transition returns the phase that follows current, along with the
// duration and instruction to apply on entering it.
func Transition(cfg Config, current Phase) (next Phase, durationSeconds int, instruction string) {
	next = cfg.Phases[current].Next
	spec := cfg.Phases[next]
	return next, spec.DurationSeconds, spec.Instruction
}
