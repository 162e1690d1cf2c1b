package rest

const (
	// auth
	RouteSignup = "/signup"
	RouteLogin  = "/login"

	// posts
	RoutePosts = "/posts"
	RouteFeed  = "/feed"

	// static uploads
	RouteUploads = "/uploads"

	// ops
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"
)
