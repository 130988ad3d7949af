package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"net/textproto"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/knadh/smtppool"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

type poolEntry struct {
	server SMTPServer
	pool   *smtppool.Pool
}

// Client delivers survey emails through a pool of SMTP connections,
// round-robining across the configured servers.
type Client struct {
	servers SMTPServerList
	baseURL string
	logger  *log.Logger

	mu      sync.Mutex
	pools   []poolEntry
	counter uint64
}

// NewClient connects a pool per configured server. Servers that fail to
// connect are skipped with a log line; at least one pool must come up.
func NewClient(cfg SMTPServerList, baseURL string, logger *log.Logger) (*Client, error) {
	c := &Client{servers: cfg, baseURL: baseURL, logger: logger}
	for _, server := range cfg.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			if logger != nil {
				logger.Printf("smtp pool setup failed for %s:%d: %v", server.Host, server.Port, err)
			}
			continue
		}
		c.pools = append(c.pools, poolEntry{server: server, pool: pool})
	}
	if len(c.pools) == 0 {
		return nil, errors.New("no smtp server connection in the pool")
	}
	return c, nil
}

func connectToPool(server SMTPServer) (*smtppool.Pool, error) {
	var auth smtp.Auth
	if server.AuthData.Username != "" || server.AuthData.Password != "" {
		auth = smtp.PlainAuth("", server.AuthData.Username, server.AuthData.Password, server.Host)
	}

	connections := server.Connections
	if connections < 1 {
		connections = 2
	}
	waitTimeout := server.SendTimeoutSeconds
	if waitTimeout < 5 {
		waitTimeout = 5
	}

	return smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            server.Port,
		MaxConns:        connections,
		IdleTimeout:     time.Second * 15,
		PoolWaitTimeout: time.Second * time.Duration(waitTimeout),
		Auth:            auth,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: server.InsecureSkipVerify,
			ServerName:         server.Host,
		},
	})
}

// SendSurvey renders the survey template and sends it to every recipient in
// one message.
func (c *Client) SendSurvey(ctx context.Context, survey *domain.Survey) error {
	html, err := RenderSurveyEmail(survey, c.baseURL, domain.DefaultChoices)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.counter++
	index := int(c.counter % uint64(len(c.pools)))
	entry := c.pools[index]
	c.mu.Unlock()

	headers := textproto.MIMEHeader{}
	headers.Set("Message-ID", fmt.Sprintf("<%s@mailpoll>", uuid.NewString()))

	sendErr := entry.pool.Send(smtppool.Email{
		From:    c.servers.From,
		To:      survey.RecipientEmails(),
		ReplyTo: c.servers.ReplyTo,
		Subject: survey.Subject,
		HTML:    []byte(html),
		Headers: headers,
	})
	if sendErr != nil {
		if c.logger != nil {
			c.logger.Printf("survey email send failed: %v", sendErr)
		}
		// Replace the broken pool so the next dispatch gets a fresh
		// connection.
		if fresh, reconnectErr := connectToPool(entry.server); reconnectErr == nil {
			c.mu.Lock()
			c.pools[index].pool = fresh
			c.mu.Unlock()
		} else if c.logger != nil {
			c.logger.Printf("smtp pool reconnect failed for %s: %v", entry.server.Host, reconnectErr)
		}
	}
	return sendErr
}
