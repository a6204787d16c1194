package header

func WithUserHeader(name string) Option {
	return func(p *Provider) {
		if name != "" {
			p.userHeader = name
		}
	}
}

func WithEmailHeader(name string) Option {
	return func(p *Provider) {
		if name != "" {
			p.emailHeader = name
		}
	}
}
