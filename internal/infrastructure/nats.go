package infrastructure

import (
	"github.com/nats-io/nats.go"
)

func connectNats(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, err
	}
	return nc, nil
}
