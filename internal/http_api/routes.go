package http_api

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/api/v1/health", s.health)
	s.router.GET("/api/v1/stats", s.stats)
	s.router.GET("/api/v1/groups", s.groups)
}
