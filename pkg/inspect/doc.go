// Package inspect streams reactive runtime activity to external tools.
//
// A Hub is a reactive.Observer that turns every notification into an Event
// and fans it out to subscribers. NewRouter exposes a Hub over HTTP:
//
//	GET /events   WebSocket stream of Event JSON messages
//	GET /stats    aggregate counters as JSON
//	GET /metrics  Prometheus exposition
//	GET /healthz  liveness probe
//
// Example:
//
//	hub := inspect.NewHub()
//	rt := reactive.New(reactive.WithObserver(hub))
//	go http.ListenAndServe(":7070", inspect.NewRouter(hub))
//
// Subscribers that fall behind lose events rather than slowing the runtime
// down; Subscription.Dropped reports how many.
package inspect
