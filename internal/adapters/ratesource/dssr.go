package ratesource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/normalize"
	"golang.org/x/net/html"
)

const defaultDSSRBaseURL = "https://allowances.state.gov/web920"

// expectedRateHeaders are the nine column headers of the real results table,
// normalized. The page carries several layout tables; only the table whose
// header row matches exactly is parsed.
var expectedRateHeaders = []string{
	"country name",
	"post name",
	"season begin",
	"season end",
	"maximum lodging rate",
	"m and ie rate",
	"maximum per diem rate",
	"footnote",
	"effective date",
}

var (
	effectiveDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	footnoteRe      = regexp.MustCompile(`(?i)Footnote=([\d,]+)`)
	nonDigitRe      = regexp.MustCompile(`[^\d]`)
)

// DSSRClient fetches foreign per-diem rows from the allowances site by
// submitting its query form and parsing the tabular HTML result.
type DSSRClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDSSRClient creates a client for the allowances site. A cookie jar is
// required: the action page rejects requests without the form page's session
// cookie.
func NewDSSRClient(timeout time.Duration, logger *slog.Logger) *DSSRClient {
	jar, _ := cookiejar.New(nil)
	return &DSSRClient{
		baseURL:    defaultDSSRBaseURL,
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		logger:     logger,
	}
}

// NewDSSRClientWithBaseURL is used by tests to point the client at a stub.
func NewDSSRClientWithBaseURL(baseURL string, timeout time.Duration, logger *slog.Logger) *DSSRClient {
	c := NewDSSRClient(timeout, logger)
	c.baseURL = baseURL
	return c
}

// FetchForeignRates returns every seasonal row published for the country.
// Failures degrade to an empty slice with a nil error; callers treat empty as
// not found.
func (c *DSSRClient) FetchForeignRates(ctx context.Context, country domain.CountryCode) ([]domain.RateRow, error) {
	info, ok := domain.LookupCountry(country)
	if !ok {
		return nil, nil
	}

	// Prime session cookies before posting the query.
	formReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/per_diem.asp", nil)
	if err != nil {
		return nil, nil
	}
	if resp, err := c.httpClient.Do(formReq); err == nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	form := url.Values{}
	form.Set("CountryCode", info.DSSRCode)
	form.Set("Post", "")

	actionReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/per_diem_action.asp", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil
	}
	actionReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(actionReq)
	if err != nil {
		c.logger.Warn("allowances query failed, degrading to empty table",
			slog.String("country", string(country)), slog.String("error", err.Error()))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("allowances query returned non-200, degrading to empty table",
			slog.String("country", string(country)), slog.Int("status", resp.StatusCode))
		return nil, nil
	}

	rows, err := ParseRateTable(resp.Body)
	if err != nil {
		c.logger.Warn("allowances table parse failed, degrading to empty table",
			slog.String("country", string(country)), slog.String("error", err.Error()))
		return nil, nil
	}
	return rows, nil
}

// ParseRateTable extracts rate rows from the allowances result page. It picks
// the table whose header row matches the expected nine columns exactly and
// skips rows that are navigation artifacts or carry an ambiguous date.
func ParseRateTable(r io.Reader) ([]domain.RateRow, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing allowances html: %w", err)
	}

	table := findResultsTable(doc)
	if table == nil {
		return nil, nil
	}

	var rows []domain.RateRow
	trs := findAll(table, "tr")
	for _, tr := range trs[1:] {
		tds := findAll(tr, "td")
		if len(tds) != 9 {
			continue
		}

		vals := make([]string, 9)
		for i, td := range tds {
			vals[i] = collapseSpace(textContent(td))
		}

		countryName := vals[0]
		lower := strings.ToLower(countryName)
		if strings.Contains(lower, "allowances by") || strings.Contains(lower, "previous rates") {
			continue
		}
		if !effectiveDateRe.MatchString(vals[8]) {
			continue
		}
		effective, err := time.Parse("01/02/2006", vals[8])
		if err != nil {
			continue
		}

		rows = append(rows, domain.RateRow{
			CountryName:    countryName,
			PostName:       vals[1],
			SeasonBegin:    vals[2],
			SeasonEnd:      vals[3],
			MaxLodgingRate: digitsToInt(vals[4]),
			MIERate:        digitsToInt(vals[5]),
			MaxPerDiemRate: digitsToInt(vals[6]),
			FootnoteIDs:    footnoteIDs(tds[7]),
			EffectiveDate:  effective,
		})
	}
	return rows, nil
}

func findResultsTable(doc *html.Node) *html.Node {
	for _, table := range findAll(doc, "table") {
		trs := findAll(table, "tr")
		if len(trs) == 0 {
			continue
		}
		ths := findAll(trs[0], "th")
		if len(ths) != len(expectedRateHeaders) {
			continue
		}
		match := true
		for i, th := range ths {
			if headerKey(textContent(th)) != expectedRateHeaders[i] {
				match = false
				break
			}
		}
		if match {
			return table
		}
	}
	return nil
}

func footnoteIDs(td *html.Node) []int {
	for _, a := range findAll(td, "a") {
		for _, attr := range a.Attr {
			if attr.Key != "href" {
				continue
			}
			m := footnoteRe.FindStringSubmatch(attr.Val)
			if m == nil {
				continue
			}
			var ids []int
			for _, part := range strings.Split(m[1], ",") {
				if n, err := strconv.Atoi(part); err == nil {
					ids = append(ids, n)
				}
			}
			return ids
		}
	}
	return nil
}

// findAll returns every descendant element with the given tag, in document
// order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag && node != n {
			out = append(out, node)
			// Tables nest in real pages; do not descend into a matched
			// element looking for the same tag.
			if tag == "table" {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteString(" ")
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\u00a0", " ")), " ")
}

func headerKey(s string) string {
	return normalize.Text(strings.ReplaceAll(collapseSpace(s), "&", " and "))
}

func digitsToInt(s string) int {
	cleaned := nonDigitRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
