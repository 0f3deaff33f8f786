package domain

// HTTPMethod represents an HTTP method (e.g., GET, HEAD).
type HTTPMethod string

const (
	MethodGet  HTTPMethod = "GET"
	MethodHead HTTPMethod = "HEAD"
)

// Response bodies served by the demo. They are part of the public contract and
// must stay byte-for-byte stable.
const (
	GreetingBody = "Hello World this is a demo"
	StressBody   = "Phew! Done"
)

const (
	RouteGreeting = "greeting"
	RouteStress   = "stress"
)

// Route describes one endpoint of the demo server and the body it answers with.
type Route struct {
	Name   string
	Method HTTPMethod
	Path   string
	Body   string
}

// Routes returns the fixed route table in registration order.
func Routes() []Route {
	return []Route{
		{Name: RouteGreeting, Method: MethodGet, Path: "/", Body: GreetingBody},
		{Name: RouteStress, Method: MethodGet, Path: "/stress", Body: StressBody},
	}
}

// RouteByName looks up a route of the fixed table.
func RouteByName(name string) (Route, bool) {
	for _, r := range Routes() {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}
