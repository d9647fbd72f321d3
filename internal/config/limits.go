package config

const (
	// MaxChainDepthHardCap bounds chain resolution when a discussion's
	// operation count cannot be trusted. A chain longer than this does not
	// occur in practice and indicates storage corruption.
	MaxChainDepthHardCap = 100_000

	// MaxRequestBodyBytes limits JSON request bodies. Requests carry a
	// couple of numbers and IDs; 64KB is generous.
	MaxRequestBodyBytes = 64 << 10
)
