package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent_Browser(t *testing.T) {
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	info := ParseUserAgent(ua, "en-US,en;q=0.9")

	assert.Equal(t, "Computer", info.Device)
	assert.Contains(t, info.OS, "Windows")
	assert.Contains(t, info.Browser, "Chrome")
	assert.Equal(t, "en-US", info.Locale)
}

func TestParseUserAgent_Phone(t *testing.T) {
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	info := ParseUserAgent(ua, "")

	assert.Equal(t, "Phone", info.Device)
	assert.Contains(t, info.OS, "iOS")
	assert.Equal(t, "", info.Locale)
}

func TestParseUserAgent_Empty(t *testing.T) {
	info := ParseUserAgent("", "fr;q=0.8")
	assert.NotNil(t, info)
	assert.Equal(t, "Unknown", info.Device)
	assert.Equal(t, "", info.OS)
	assert.Equal(t, "fr", info.Locale)
}

func TestParseUserAgent_NeverNil(t *testing.T) {
	assert.NotNil(t, ParseUserAgent("Mozilla/5.0 (compatible; GPTBot/1.0; +https://openai.com/gptbot)", ""))
	assert.NotNil(t, ParseUserAgent("curl/8.0", ""))
}

func TestPrimaryLocale(t *testing.T) {
	assert.Equal(t, "de-DE", primaryLocale(" de-DE ;q=1, en"))
	assert.Equal(t, "", primaryLocale(""))
}
