package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreetingService(t *testing.T) {
	greetings := NewGreetingService("Daniel")

	assert.Equal(t, "Hello World Daniel", greetings.HelloWorld(""))
	assert.Equal(t, "Hello World Ana", greetings.HelloWorld("Ana"))
	assert.Equal(t, "Hello World nenhum", greetings.HelloWorldFiltered(""))
	assert.Equal(t, "Hello World ativos", greetings.HelloWorldFiltered("ativos"))
	assert.Equal(t, "Hello, Ana! Welcome to the REST API!", greetings.Welcome("Ana"))
}
