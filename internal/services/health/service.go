package health

// Service encapsulates health-related checks.
type Service struct {
	env       string
	providers []string
}

// NewService constructs a health service. providers lists the configured
// inference providers in failover order.
func NewService(env string, providers []string) *Service {
	if providers == nil {
		providers = []string{}
	}
	return &Service{env: env, providers: providers}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":        true,
		"env":       s.env,
		"providers": s.providers,
	}
}
