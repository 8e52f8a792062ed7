package auth

import "context"

// noopCodeSender swallows codes; useful in tests and as the default
// until a real delivery channel is configured.
type noopCodeSender struct{}

func (noopCodeSender) SendCode(_ context.Context, _ Email, _ TwoFACode) error {
	return nil
}

// LogCodeSender writes the challenge delivery through the logger. It
// stands in for the mail integration; the code itself is only logged
// at debug level.
type LogCodeSender struct {
	logger Logger
}

func NewLogCodeSender(logger Logger) *LogCodeSender {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogCodeSender{logger: logger}
}

func (s *LogCodeSender) SendCode(_ context.Context, email Email, code TwoFACode) error {
	s.logger.Info("two factor challenge issued", "email", email.String())
	s.logger.Debug("two factor code", "code", code.String())
	return nil
}

func normalizeCodeSender(sender CodeSender) CodeSender {
	if sender == nil {
		return noopCodeSender{}
	}
	return sender
}
