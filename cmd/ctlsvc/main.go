// Command ctlsvc sends one control request to the gym service over NATS and prints the reply.
// It is meant to be run by an external scheduler such as cron:
//
//	ctlsvc sweep -admin <adminId>   mark today's missing attendance as Absent
//	ctlsvc purge                    delete payments past the retention window
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/gym-services/configs"
	"github.com/avvvet/gym-services/internal/comm"
	natscli "github.com/avvvet/gym-services/internal/nats"
)

const SERVICE_NAME = "ctl"

func main() {
	config.LoadEnv(SERVICE_NAME)

	if len(os.Args) < 2 {
		usage()
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	natsURL := fs.String("nats", envOr("NATS_URL", natscli.DefaultURL), "NATS server url")
	timeout := fs.Duration("timeout", 30*time.Second, "how long to wait for the reply")

	var msg comm.Message
	switch os.Args[1] {
	case "sweep":
		adminID := fs.String("admin", "", "gym owner id")
		fs.Parse(os.Args[2:])
		if *adminID == "" {
			fmt.Fprintln(os.Stderr, "sweep: -admin is required")
			os.Exit(2)
		}
		data, _ := json.Marshal(comm.MarkAttendanceRequest{AdminID: *adminID})
		msg = comm.Message{Type: comm.RequestMarkAttendance, Data: data}
	case "purge":
		fs.Parse(os.Args[2:])
		msg = comm.Message{Type: comm.RequestCleanupPayments, Data: json.RawMessage(`{}`)}
	default:
		usage()
	}

	if err := send(msg, *natsURL, *timeout); err != nil {
		log.Fatal(err)
	}
}

// send delivers msg to the service queue and prints the reply. A reply other than ok is an error.
func send(msg comm.Message, natsURL string, timeout time.Duration) error {
	instanceId, err := config.CreateUniqueInstance(SERVICE_NAME)
	if err != nil {
		return fmt.Errorf("error generating instanceId: %w", err)
	}
	msg.Instance = instanceId
	msg.SentAt = time.Now().UTC()

	n, err := natscli.Connect(SERVICE_NAME+"_"+instanceId, natsURL, os.Getenv("NATS_TOKEN"))
	if err != nil {
		return fmt.Errorf("unable to connect to NATS server: %w", err)
	}
	defer n.Conn.Close()

	payload, err := json.Marshal(&msg)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	res, err := n.Conn.Request(comm.ServiceTopic, payload, timeout)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", msg.Type, err)
	}

	var reply comm.Reply
	if err := json.Unmarshal(res.Data, &reply); err != nil {
		return fmt.Errorf("malformed reply: %w", err)
	}
	fmt.Printf("%s: %s %s\n", reply.Status, reply.Message, reply.Data)
	if reply.Status != comm.StatusOK {
		return fmt.Errorf("%s was not applied", msg.Type)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ctlsvc sweep -admin <adminId> | ctlsvc purge")
	os.Exit(2)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
