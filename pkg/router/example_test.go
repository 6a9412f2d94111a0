package router_test

import (
	"errors"
	"fmt"

	"github.com/bft-labs/switchyard/pkg/router"
)

func printer(name string) router.Receiver {
	return router.ReceiverFunc(func(m router.Message) {
		switch m.Kind {
		case router.KindSystem:
			if errors.Is(m.Err, router.ErrRecipientNotFound) {
				fmt.Printf("%s: %s\n", name, m.Payload)
				return
			}
			fmt.Printf("%s: [%s]\n", name, m.Payload)
		default:
			fmt.Printf("%s <- %s (%s): %s\n", name, m.From, m.Kind, m.Payload)
		}
	})
}

func Example() {
	r := router.New()
	alice := router.NewEndpoint("Alice", printer("Alice"))
	bob := router.NewEndpoint("Bob", printer("Bob"))

	_ = r.Register(alice)
	_ = r.Register(bob)
	_ = alice.Send("Hi Bob")
	_ = bob.SendTo("Alice", "Hello Alice")
	_ = bob.SendTo("Carol", "are you there?")

	// Output:
	// Alice: [Bob joined]
	// Bob <- Alice (broadcast): Hi Bob
	// Alice <- Bob (directed): Hello Alice
	// Bob: recipient "Carol" not found
}
