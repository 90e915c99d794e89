package notify

import "time"

// Config holds websocket and delivery settings.
type Config struct {
	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"2s"`
	// DeliveryTimeout bounds NotifyIfOnline as a whole, including relay publish.
	DeliveryTimeout time.Duration `env:"WS_DELIVERY_TIMEOUT" envDefault:"3s"`
	// PongWait is the idle timeout: the connection is dropped if no frame or pong arrives within it.
	PongWait time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	// PingInterval must be shorter than PongWait.
	PingInterval     time.Duration `env:"WS_PING_INTERVAL" envDefault:"50s"`
	HandshakeTimeout time.Duration `env:"WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	ReadLimit        int64         `env:"WS_READ_LIMIT" envDefault:"4096"`
	ReadBufferSize   int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WriteBufferSize  int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	// AllowedOrigins restricts the Origin header. Empty allows any origin.
	AllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`
}

// DefaultConfig returns the defaults declared in the env tags.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:     2 * time.Second,
		DeliveryTimeout:  3 * time.Second,
		PongWait:         60 * time.Second,
		PingInterval:     50 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ReadLimit:        4096,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = d.DeliveryTimeout
	}
	if c.PongWait <= 0 {
		c.PongWait = d.PongWait
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = c.PongWait * 9 / 10
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	return c
}
