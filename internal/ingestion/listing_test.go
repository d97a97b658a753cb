package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<!DOCTYPE html>
<html>
<head><title>Backend Engineer - Initech</title><style>body{}</style></head>
<body>
  <nav>Home | Jobs | About</nav>
  <div class="job-description">
    <h1>Backend Engineer</h1>
    <p>Initech is hiring a Backend Engineer to build Go services.</p>
    <ul><li>5+ years experience</li><li>PostgreSQL</li></ul>
  </div>
  <footer>Copyright Initech</footer>
</body>
</html>`

func TestExtractListingText(t *testing.T) {
	text, err := ExtractListingText(listingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "Go services")
	assert.Contains(t, text, "PostgreSQL")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractListingText_FallsBackToBody(t *testing.T) {
	text, err := ExtractListingText("<html><body><p>Plain posting text.</p></body></html>")
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text.", text)
}

func TestFetchListingText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "ResumeStudio")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(listingHTML))
	}))
	defer srv.Close()

	page, err := FetchListingText(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.Text, "Backend Engineer")
	assert.Contains(t, page.HTML, "job-description")
}

func TestFetchPage_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	page, err := FetchPage(context.Background(), srv.URL, nil)
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
}

func TestFetchPage_InvalidURL(t *testing.T) {
	_, err := FetchPage(context.Background(), "not-a-url", nil)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}
