package scorehttp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/gradebook"
)

type Client struct {
	base  string
	token string
	http  *http.Client
}

type Config struct {
	// BaseURL of the gradebook service; scores are posted to {BaseURL}/scores.
	BaseURL string
	// Token, when set, is sent as a bearer token.
	Token   string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	h := &http.Client{}
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{base: cfg.BaseURL, token: cfg.Token, http: h}
}

func (c *Client) PostScore(s gradebook.Score) error {
	body, _ := json.Marshal(map[string]any{
		"studentId": s.StudentID, "assignmentId": s.AssignmentID,
		"scoreGiven": s.ScoreGiven, "scoreMaximum": s.ScoreMaximum,
		"timestamp": s.Timestamp.Format(time.RFC3339),
	})
	base := c.base
	if base != "" && base[len(base)-1] != '/' {
		base += "/"
	}
	req, _ := http.NewRequest("POST", base+"scores", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("post score: %s", res.Status)
	}
	return nil
}
