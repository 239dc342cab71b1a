package service

import "fmt"

// DefaultFilter is used when the hello-world POST carries no filter.
const DefaultFilter = "nenhum"

// GreetingService builds the hello-world messages.
type GreetingService struct {
	defaultName string
}

// NewGreetingService returns a service greeting defaultName when no name is given.
func NewGreetingService(defaultName string) *GreetingService {
	return &GreetingService{defaultName: defaultName}
}

// HelloWorld greets name, or the default name when name is empty.
func (s *GreetingService) HelloWorld(name string) string {
	if name == "" {
		name = s.defaultName
	}
	return "Hello World " + name
}

// HelloWorldFiltered echoes the filter, or DefaultFilter when it is empty.
func (s *GreetingService) HelloWorldFiltered(filter string) string {
	if filter == "" {
		filter = DefaultFilter
	}
	return "Hello World " + filter
}

// Welcome greets a REST API visitor.
func (s *GreetingService) Welcome(name string) string {
	return fmt.Sprintf("Hello, %s! Welcome to the REST API!", name)
}
