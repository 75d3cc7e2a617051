package sheets

import (
	"context"
	"fmt"
	"math"
	"time"

	"sheetstep/pkg/grid"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

// Client talks to the Google Sheets API for a single spreadsheet.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	srv, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{service: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *Client) FetchGrid(ctx context.Context, rng Range, render ValueRenderMode) (grid.Grid, bool, error) {
	var resp *sheetsapi.ValueRange
	err := c.withRetry(func() error {
		var err error
		resp, err = c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng.String()).
			ValueRenderOption(string(render)).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, false, nil
	}
	return grid.FromValues(resp.Values), true, nil
}

func (c *Client) WriteGrid(ctx context.Context, rng Range, g grid.Grid, input ValueInputMode) error {
	err := c.withRetry(func() error {
		_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, rng.String(), &sheetsapi.ValueRange{
			Values: g.Values(),
		}).ValueInputOption(string(input)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	return nil
}

func (c *Client) AppendGrid(ctx context.Context, rng Range, g grid.Grid, input ValueInputMode) error {
	err := c.withRetry(func() error {
		_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, rng.String(), &sheetsapi.ValueRange{
			Values: g.Values(),
		}).ValueInputOption(string(input)).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append %s: %w", rng, err)
	}
	return nil
}

func (c *Client) ClearRange(ctx context.Context, rng Range) error {
	err := c.withRetry(func() error {
		_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, rng.String(), &sheetsapi.ClearValuesRequest{}).
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) BatchWrite(ctx context.Context, writes []RangeGrid, input ValueInputMode) error {
	if len(writes) == 0 {
		return nil
	}
	data := make([]*sheetsapi.ValueRange, len(writes))
	for i, w := range writes {
		data[i] = &sheetsapi.ValueRange{
			Range:  w.Range.String(),
			Values: w.Grid.Values(),
		}
	}
	err := c.withRetry(func() error {
		_, err := c.service.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
			ValueInputOption: string(input),
			Data:             data,
		}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("batch write %d ranges: %w", len(writes), err)
	}
	return nil
}

// EnsureSheetExists adds the named sheet to the spreadsheet when it is
// missing. The engine calls this ahead of append, update and clear;
// reads tolerate a missing sheet already.
func (c *Client) EnsureSheetExists(ctx context.Context, sheetName string) error {
	ss, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties.Title == sheetName {
			return nil
		}
	}
	addSheetReq := &sheetsapi.Request{
		AddSheet: &sheetsapi.AddSheetRequest{
			Properties: &sheetsapi.SheetProperties{
				Title: sheetName,
			},
		},
	}
	_, err = c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{addSheetReq},
	}).Context(ctx).Do()
	return err
}

// withRetry runs fn, backing off exponentially on rate-limit errors.
func (c *Client) withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 429 || gErr.Code == 403) {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			log.Printf("Rate limited by Google Sheets API, retrying in %v...", backoff)
			time.Sleep(backoff)
			continue
		}
		return err
	}
	return fmt.Errorf("giving up after %d retries: %w", maxRetries, err)
}
