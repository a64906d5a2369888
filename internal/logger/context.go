package logger

// Component-specific logger functions

// HTTP returns a logger for request handling.
func HTTP() Logger {
	return WithField("component", "http")
}

// Store returns a logger for database operations.
func Store() Logger {
	return WithField("component", "store")
}

// Auth returns a logger for authentication and sessions.
func Auth() Logger {
	return WithField("component", "auth")
}

// Uploads returns a logger for attachment file handling.
func Uploads() Logger {
	return WithField("component", "uploads")
}

// Summarize returns a logger for the summarization gateway.
func Summarize() Logger {
	return WithField("component", "summarize")
}

// CLI returns a logger for command-line operations.
func CLI() Logger {
	return WithField("component", "cli")
}
