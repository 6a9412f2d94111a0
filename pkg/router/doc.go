// Package router delivers text messages between named endpoints.
//
// A [Router] keeps a registry of [Endpoint] values keyed by name. Registering
// an endpoint binds it to the router and tells every other member that it
// joined; unregistering unbinds it and tells the rest that it left.
//
// Messages are either broadcast to every registered endpoint except the
// sender, or directed to one endpoint by name. A directed message to an
// unknown name is not an error for the caller: the sender receives a
// [KindSystem] message whose Err is [ErrRecipientNotFound].
//
//	r := router.New()
//	alice := router.NewEndpoint("alice", router.NewInbox())
//	bob := router.NewEndpoint("bob", router.NewInbox())
//	_ = r.Register(alice)
//	_ = r.Register(bob)
//	_ = alice.Send("hi")          // bob receives a broadcast
//	_ = bob.SendTo("alice", "yo") // alice receives a directed message
//
// # Delivery
//
// Delivery is synchronous: when Send returns, every recipient's Receive has
// returned. The registry lock is only held while the recipient list is
// copied, never while receivers run, so a slow receiver delays its sender
// but cannot block registration or other senders. Receivers may be called
// from several goroutines at once and may themselves send.
package router
