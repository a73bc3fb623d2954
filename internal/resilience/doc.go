// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes implementations of circuit breakers and retry logic to ensure the content
// pipeline keeps working in the face of flaky AI and translation backends.
//
// The package supports:
//   - Circuit breakers for external API calls (generation, DeepL, OpenAI)
//   - Retry logic with deterministic exponential or linear backoff
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DeepLAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
//
//	err := retry.Do(ctx, retry.CoordinatorConfig(), func() error {
//	    return performOperation()
//	})
package resilience
