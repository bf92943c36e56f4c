// Package log provides secure logging built on top of the standard slog package.
//
// The SecureHandler masks sensitive information before it reaches the
// underlying handler:
//   - attributes named like secret material (secret, match, token, password)
//   - values that look like credentials (AWS keys, GitHub and Slack tokens,
//     JWTs, private key headers)
//
// Masking applies at every level, so verbose logs of a gitleaks report can
// be shared without leaking the secrets the report describes.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: true})
//	logger.Info("loaded report", "findings", 12, "secret", f.Secret) // secret is masked
//	slog.SetDefault(logger)
package log
