package registration

import (
	"strings"
	"time"
)

// DefaultClosureMessage is shown while the registration window is closed.
const DefaultClosureMessage = "El sistema de postulación se ha cerrado."

// SystemConfig is the singleton switch that opens or closes registration.
type SystemConfig struct {
	ID            int
	SistemaActivo bool
	Mensaje       string
	UpdatedAt     time.Time
}

// DefaultSystemConfig returns the configuration created on first read.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		ID:            1,
		SistemaActivo: true,
		Mensaje:       DefaultClosureMessage,
		UpdatedAt:     time.Now(),
	}
}

// Update sets the switch and message. A blank message falls back to the
// default.
func (c *SystemConfig) Update(active bool, message string) {
	c.SistemaActivo = active
	c.Mensaje = strings.TrimSpace(message)
	if c.Mensaje == "" {
		c.Mensaje = DefaultClosureMessage
	}
	c.UpdatedAt = time.Now()
}

// AcceptsSubmissions returns nil when registration is open and a closed
// error carrying the configured message otherwise.
func (c *SystemConfig) AcceptsSubmissions() error {
	if c.SistemaActivo {
		return nil
	}
	return ClosedError(c.Mensaje)
}
