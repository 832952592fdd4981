package metrics

import "github.com/san-kum/springrk/internal/spring"

// SettleTime is the animation time at which the spring last reported that it
// was moving. It stops advancing once the spring goes idle.
type SettleTime struct {
	t float64
}

func NewSettleTime() *SettleTime { return &SettleTime{} }

func (s *SettleTime) Name() string { return "settle_time" }

func (s *SettleTime) Observe(st spring.State, t float64) {
	if st.Animating || st.Velocity != 0 || st.Value != st.Target {
		s.t = t
	}
}

func (s *SettleTime) Value() float64 { return s.t }
func (s *SettleTime) Reset()         { s.t = 0 }
