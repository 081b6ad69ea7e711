package trainlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/lmehl/trainsync/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	overviewSheetTitle = "Übersicht"
	templateSheetTitle = "leer"

	// new week worksheets go right after the overview and template sheets,
	// so the newest week is always the third sheet
	newSheetIndex = 2

	worksheetsCacheKey = "worksheets"
)

var (
	// ErrHeaderShape means a week worksheet's header cell does not look like
	// "KW 2724 - 01.07.2024 - 07.07.2024". That signals a layout change in
	// the spreadsheet and is never retried.
	ErrHeaderShape = errors.New("unexpected week header shape")

	// ErrNoTemplate means the blank template worksheet is missing.
	ErrNoTemplate = errors.New("template worksheet not found")

	// ErrNoWeekSheets means the spreadsheet holds no week worksheets yet.
	ErrNoWeekSheets = errors.New("no week worksheets found")
)

type ClientConfig struct {
	SpreadsheetID   string
	CredentialsJSON []byte

	// CutoffHour splits the morning and afternoon session bands.
	CutoffHour int

	// CacheTTL bounds how long the worksheet list may be served from memory.
	CacheTTL time.Duration

	// RateLimitWait is the fixed sleep before the single batch-write retry
	// after a rate-limit rejection.
	RateLimitWait time.Duration

	// PerCellWriteDelay spaces out the per-cell fallback writes.
	PerCellWriteDelay time.Duration
}

func (c *ClientConfig) applyDefaults() {
	if c.CutoffHour == 0 {
		c.CutoffHour = 12
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Minute
	}
	if c.RateLimitWait == 0 {
		c.RateLimitWait = 30 * time.Second
	}
	if c.PerCellWriteDelay == 0 {
		c.PerCellWriteDelay = 2 * time.Second
	}
}

// Client maintains the week-grid training log in a remote Google
// spreadsheet. All remote calls that can be rate-limited back off and
// retry instead of aborting the run.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	cutoffHour    int
	cacheTTL      time.Duration
	rateLimitWait time.Duration
	perCellDelay  time.Duration

	cache     *freecache.Cache
	readRetry pkg.RetryPolicy

	// sleep is swappable so the backoff tests do not actually wait
	sleep func(time.Duration)
}

func NewClient(ctx context.Context, cfg ClientConfig, opts ...option.ClientOption) (*Client, error) {
	cfg.applyDefaults()

	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithCredentialsJSON(cfg.CredentialsJSON)}
	}
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	megabyte := 1024 * 1024
	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		cutoffHour:    cfg.CutoffHour,
		cacheTTL:      cfg.CacheTTL,
		rateLimitWait: cfg.RateLimitWait,
		perCellDelay:  cfg.PerCellWriteDelay,
		cache:         freecache.NewCache(megabyte),
		readRetry:     pkg.ExponentialRetry("sheets", 4, time.Second, isRetryable),
		sleep:         time.Sleep,
	}, nil
}

func isRetryable(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code >= 500
	}
	return false
}

func isRateLimited(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests
}

type sheetInfo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Index int64  `json:"index"`
}

func (s sheetInfo) isWeekSheet() bool {
	return s.Title != overviewSheetTitle &&
		s.Title != templateSheetTitle &&
		strings.HasPrefix(s.Title, "KW")
}

// worksheets lists the spreadsheet's sheets, served from the time-boxed
// cache when possible to bound request volume.
func (c *Client) worksheets(ctx context.Context) ([]sheetInfo, error) {
	if data, err := c.cache.Get([]byte(worksheetsCacheKey)); err == nil {
		var infos []sheetInfo
		if err := json.Unmarshal(data, &infos); err == nil {
			log.Tracef("trainlog: worksheet list served from cache (%d sheets)", len(infos))
			return infos, nil
		}
		log.Errorf("trainlog: failed to unmarshal cached worksheet list: %s", err)
	}

	var spreadsheet *sheets.Spreadsheet
	err := c.readRetry.Do(ctx, func() error {
		var err error
		spreadsheet, err = c.service.Spreadsheets.
			Get(c.spreadsheetID).
			Fields("sheets.properties").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list worksheets: %w", err)
	}

	infos := make([]sheetInfo, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		infos = append(infos, sheetInfo{
			ID:    sheet.Properties.SheetId,
			Title: sheet.Properties.Title,
			Index: sheet.Properties.Index,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Index < infos[j].Index })

	if data, err := json.Marshal(infos); err == nil {
		if err := c.cache.Set([]byte(worksheetsCacheKey), data, int(c.cacheTTL.Seconds())); err != nil {
			log.Errorf("trainlog: failed to cache worksheet list: %s", err)
		}
	}

	return infos, nil
}

// invalidateWorksheets drops the cached list; must run after any create or
// rename so the same run never observes a stale copy.
func (c *Client) invalidateWorksheets() {
	c.cache.Del([]byte(worksheetsCacheKey))
}

func (c *Client) weekSheets(ctx context.Context) ([]sheetInfo, error) {
	infos, err := c.worksheets(ctx)
	if err != nil {
		return nil, err
	}
	weeks := make([]sheetInfo, 0, len(infos))
	for _, info := range infos {
		if info.isWeekSheet() {
			weeks = append(weeks, info)
		}
	}
	return weeks, nil
}

// FirstIncompleteDay reads the newest week worksheet's header for its start
// date, probes the fixed grid range column-major, strips trailing blank/zero
// columns, and returns start + floor(populatedColumns/2) days - the cursor
// for how far the log has been filled.
func (c *Client) FirstIncompleteDay(ctx context.Context) (time.Time, error) {
	weeks, err := c.weekSheets(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if len(weeks) == 0 {
		return time.Time{}, ErrNoWeekSheets
	}
	latest := weeks[0]

	header, err := c.readCell(ctx, latest.Title, headerCell)
	if err != nil {
		return time.Time{}, err
	}
	weekStart, _, err := parseHeader(header)
	if err != nil {
		return time.Time{}, err
	}

	var probe *sheets.ValueRange
	err = c.readRetry.Do(ctx, func() error {
		var err error
		probe, err = c.service.Spreadsheets.Values.
			Get(c.spreadsheetID, rangeRef(latest.Title, probeRange())).
			MajorDimension("COLUMNS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("probe range read: %w", err)
	}

	columns := probe.Values
	for len(columns) > 0 && columnBlank(columns[len(columns)-1]) {
		columns = columns[:len(columns)-1]
	}

	days := len(columns) / 2
	day := weekStart.AddDate(0, 0, days)
	log.Debugf("trainlog: first incomplete day is %s (%d populated columns in %s)",
		day.Format(time.DateOnly), len(columns), latest.Title)
	return day, nil
}

func columnBlank(column []interface{}) bool {
	for _, cell := range column {
		s := strings.TrimSpace(fmt.Sprint(cell))
		if s != "" && s != "0" {
			return false
		}
	}
	return true
}

// AddEntry writes one activity into its week worksheet, creating the
// worksheet first when needed. All cell writes go out as a single batched
// call; on rate limiting the batch is retried once after a fixed wait and
// then degraded to per-cell writes with an inter-write delay.
func (c *Client) AddEntry(ctx context.Context, entry Entry) error {
	writes, err := EntryWrites(entry, c.cutoffHour)
	if err != nil {
		return err
	}

	week, err := c.ensureWeekSheet(ctx, entry.Timestamp)
	if err != nil {
		return err
	}

	ranges := make([]string, 0, len(writes))
	for _, w := range writes {
		ranges = append(ranges, rangeRef(week.Title, w.Cell))
	}

	var existing *sheets.BatchGetValuesResponse
	err = c.readRetry.Do(ctx, func() error {
		var err error
		existing, err = c.service.Spreadsheets.Values.
			BatchGet(c.spreadsheetID).
			Ranges(ranges...).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("read destination cells: %w", err)
	}

	data := make([]*sheets.ValueRange, 0, len(writes))
	for i, w := range writes {
		current := ""
		if i < len(existing.ValueRanges) {
			current = firstCellValue(existing.ValueRanges[i])
		}
		data = append(data, &sheets.ValueRange{
			Range:  ranges[i],
			Values: [][]interface{}{{Accumulate(current, w)}},
		})
	}

	if err := c.batchWrite(ctx, data); err != nil {
		return err
	}

	log.Infof("trainlog: entry for %s (%s) written to %s",
		entry.Timestamp.Format("2006-01-02 15:04"), entry.SportType, week.Title)
	return nil
}

func (c *Client) batchWrite(ctx context.Context, data []*sheets.ValueRange) error {
	doBatch := func() error {
		_, err := c.service.Spreadsheets.Values.
			BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateValuesRequest{
				ValueInputOption: "USER_ENTERED",
				Data:             data,
			}).
			Context(ctx).
			Do()
		return err
	}

	err := doBatch()
	if err == nil {
		return nil
	}
	if !isRateLimited(err) {
		return fmt.Errorf("batch cell write: %w", err)
	}

	log.Warnf("trainlog: batch write rate-limited, waiting %s before one retry", c.rateLimitWait)
	c.sleep(c.rateLimitWait)

	err = doBatch()
	if err == nil {
		return nil
	}
	if !isRateLimited(err) {
		return fmt.Errorf("batch cell write retry: %w", err)
	}

	log.Warnf("trainlog: batch write rate-limited again, falling back to per-cell writes")
	for _, vr := range data {
		_, err := c.service.Spreadsheets.Values.
			Update(c.spreadsheetID, vr.Range, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("per-cell write %s: %w", vr.Range, err)
		}
		c.sleep(c.perCellDelay)
	}
	return nil
}

// ensureWeekSheet resolves the worksheet for t's week, duplicating the
// blank template when the week has no sheet yet.
func (c *Client) ensureWeekSheet(ctx context.Context, t time.Time) (sheetInfo, error) {
	title := WeekTitle(t)

	infos, err := c.worksheets(ctx)
	if err != nil {
		return sheetInfo{}, err
	}
	if info, ok := findSheet(infos, title); ok {
		return info, nil
	}

	template, ok := findSheet(infos, templateSheetTitle)
	if !ok {
		return sheetInfo{}, ErrNoTemplate
	}

	log.Infof("trainlog: creating week worksheet %s", title)

	_, err = c.service.Spreadsheets.
		BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				DuplicateSheet: &sheets.DuplicateSheetRequest{
					SourceSheetId:    template.ID,
					InsertSheetIndex: newSheetIndex,
					NewSheetName:     title,
				},
			}},
		}).
		Context(ctx).
		Do()
	c.invalidateWorksheets()
	if err != nil {
		// a concurrent run may have created the sheet in between the
		// existence check and the duplicate call; re-resolve instead of
		// failing hard
		if !isAlreadyExists(err) {
			return sheetInfo{}, fmt.Errorf("duplicate template worksheet: %w", err)
		}
		log.Warnf("trainlog: worksheet %s already exists, re-resolving", title)
		infos, err := c.worksheets(ctx)
		if err != nil {
			return sheetInfo{}, err
		}
		info, ok := findSheet(infos, title)
		if !ok {
			return sheetInfo{}, fmt.Errorf("worksheet %s reported existing but not found", title)
		}
		return info, nil
	}

	if err := c.writeCell(ctx, title, headerCell, WeekHeader(t)); err != nil {
		return sheetInfo{}, fmt.Errorf("write week header: %w", err)
	}

	infos, err = c.worksheets(ctx)
	if err != nil {
		return sheetInfo{}, err
	}
	info, ok := findSheet(infos, title)
	if !ok {
		return sheetInfo{}, fmt.Errorf("worksheet %s not found after create", title)
	}

	if err := c.appendToOverview(ctx, info); err != nil {
		return sheetInfo{}, err
	}

	return info, nil
}

func isAlreadyExists(err error) bool {
	var gErr *googleapi.Error
	return errors.As(err, &gErr) &&
		gErr.Code == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(gErr.Message), "already exists")
}

// appendToOverview adds the worksheet's title and a hyperlink to the
// overview index, unless a row for it is already present.
func (c *Client) appendToOverview(ctx context.Context, info sheetInfo) error {
	var existing *sheets.ValueRange
	err := c.readRetry.Do(ctx, func() error {
		var err error
		existing, err = c.service.Spreadsheets.Values.
			Get(c.spreadsheetID, rangeRef(overviewSheetTitle, "A:A")).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("read overview index: %w", err)
	}

	for _, row := range existing.Values {
		if len(row) > 0 && fmt.Sprint(row[0]) == info.Title {
			log.Debugf("trainlog: overview already lists %s", info.Title)
			return nil
		}
	}

	link := fmt.Sprintf(`=HYPERLINK("#gid=%d"; "%s")`, info.ID, info.Title)
	err = c.readRetry.Do(ctx, func() error {
		_, err := c.service.Spreadsheets.Values.
			Append(c.spreadsheetID, rangeRef(overviewSheetTitle, "A:B"), &sheets.ValueRange{
				Values: [][]interface{}{{info.Title, link}},
			}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append to overview index: %w", err)
	}
	return nil
}

// Week is a week worksheet together with its header date span.
type Week struct {
	Title string
	Start time.Time
	End   time.Time
}

// EmptyTallyWeeks returns the trailing run of week worksheets whose tally
// cells are both still blank/zero - the weeks awaiting a rollup. Rolled-up
// weeks always precede them, so the scan walks newest to oldest and stops
// at the first filled week; the result comes back oldest first.
func (c *Client) EmptyTallyWeeks(ctx context.Context) ([]Week, error) {
	weekInfos, err := c.weekSheets(ctx)
	if err != nil {
		return nil, err
	}

	var weeks []Week
	// the newest week sits at the lowest sheet index
	for _, info := range weekInfos {
		var tallies *sheets.BatchGetValuesResponse
		err := c.readRetry.Do(ctx, func() error {
			var err error
			tallies, err = c.service.Spreadsheets.Values.
				BatchGet(c.spreadsheetID).
				Ranges(
					rangeRef(info.Title, tallyWorkoutCell),
					rangeRef(info.Title, tallyYogaCell),
				).
				Context(ctx).
				Do()
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("read tally cells of %s: %w", info.Title, err)
		}

		filled := false
		for _, vr := range tallies.ValueRanges {
			value := strings.TrimSpace(firstCellValue(vr))
			if value != "" && value != "0" {
				filled = true
				break
			}
		}
		if filled {
			break
		}

		header, err := c.readCell(ctx, info.Title, headerCell)
		if err != nil {
			return nil, err
		}
		start, end, err := parseHeader(header)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, Week{Title: info.Title, Start: start, End: end})
	}

	// oldest first for the caller
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}

	return weeks, nil
}

// SetWeekTallies writes the workout and yoga counts into a week's summary cells.
func (c *Client) SetWeekTallies(ctx context.Context, week Week, workouts, yoga int) error {
	data := []*sheets.ValueRange{
		{
			Range:  rangeRef(week.Title, tallyWorkoutCell),
			Values: [][]interface{}{{workouts}},
		},
		{
			Range:  rangeRef(week.Title, tallyYogaCell),
			Values: [][]interface{}{{yoga}},
		},
	}
	if err := c.batchWrite(ctx, data); err != nil {
		return fmt.Errorf("write tallies of %s: %w", week.Title, err)
	}
	log.Infof("trainlog: tallies of %s set to %d workouts / %d yoga", week.Title, workouts, yoga)
	return nil
}

func (c *Client) readCell(ctx context.Context, sheetTitle, cell string) (string, error) {
	var vr *sheets.ValueRange
	err := c.readRetry.Do(ctx, func() error {
		var err error
		vr, err = c.service.Spreadsheets.Values.
			Get(c.spreadsheetID, rangeRef(sheetTitle, cell)).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("read cell %s!%s: %w", sheetTitle, cell, err)
	}
	return firstCellValue(vr), nil
}

func (c *Client) writeCell(ctx context.Context, sheetTitle, cell string, value interface{}) error {
	return c.readRetry.Do(ctx, func() error {
		_, err := c.service.Spreadsheets.Values.
			Update(c.spreadsheetID, rangeRef(sheetTitle, cell), &sheets.ValueRange{
				Values: [][]interface{}{{value}},
			}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
}

func rangeRef(sheetTitle, ref string) string {
	return fmt.Sprintf("'%s'!%s", sheetTitle, ref)
}

func firstCellValue(vr *sheets.ValueRange) string {
	if vr == nil || len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		return ""
	}
	return fmt.Sprint(vr.Values[0][0])
}

func findSheet(infos []sheetInfo, title string) (sheetInfo, bool) {
	for _, info := range infos {
		if info.Title == title {
			return info, true
		}
	}
	return sheetInfo{}, false
}
