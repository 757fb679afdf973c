// Package clock provides the application clock.
//
// Usage Examples:
//
//  1. Injected into services:
//     svc := service.New(repo, clock.New(cfg), ...)
//     now := svc.clock.Now()                  // Current time in app timezone
//
//  2. Calendar days in app timezone:
//     today := clock.Today(c)                 // Current day as midnight UTC
//     day := clock.DateOf(c, t)               // Day t falls on in app timezone
//
//  3. Parsing request dates:
//     d, err := clock.ParseDate("2024-01-01")
//
//  4. Tests:
//     c := clock.Fixed(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
//
// The timezone is configured via the APP_TIMEZONE environment variable.
// Use standard IANA timezone database names for reliable cross-platform compatibility.
package clock
