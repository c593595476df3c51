package route

import "fmt"

// Environment says where route code runs. Loaders only wait for client side
// resources, such as stylesheets, in the Client environment.
type Environment int

const (
	Server Environment = iota
	Client
)

func (e Environment) String() string {
	switch e {
	case Server:
		return "server"
	case Client:
		return "client"
	default:
		return fmt.Sprintf("Environment(%d)", int(e))
	}
}

// ParseEnvironment parses "server" or "client".
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "server":
		return Server, nil
	case "client":
		return Client, nil
	default:
		return Server, fmt.Errorf("unknown environment %q, want \"server\" or \"client\"", s)
	}
}
