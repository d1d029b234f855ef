package heuristic

// Fixed word lists driving the language-analysis flags. Matching is
// token-membership over the lower-cased request, so ordering inside a list
// does not matter; ordering ACROSS the tables below does, and is part of the
// classification contract (earlier-checked domain wins).

var questionWords = wordSet(
	"what", "how", "when", "where", "why", "who", "which",
	"can", "could", "would", "should", "is", "are", "do", "does",
)

var actionWords = wordSet(
	"make", "create", "build", "open", "close", "start", "stop",
	"send", "write", "code", "calculate", "search",
	"turn", "increase", "decrease", "mute", "dim",
)

var systemWords = wordSet(
	"system", "computer", "app", "application", "program", "software",
	"brightness", "volume", "sound", "audio", "screen",
)

var technicalWords = wordSet(
	"api", "database", "server", "client", "function", "variable",
	"algorithm", "framework",
)

var politeWords = wordSet("please", "help", "thank", "thanks", "appreciate")

var urgencyWords = wordSet("urgent", "quickly", "asap", "now", "immediately")

var simpleWords = wordSet("simple", "easy", "basic")

var complexWords = wordSet("complex", "advanced", "detailed", "comprehensive")

// Domain keyword lists, checked in priority order: creation beats
// system-control beats communication beats search beats computation.
var (
	creationWords      = wordSet("create", "make", "build", "generate", "write", "code")
	launchWords        = wordSet("open", "launch", "start")
	communicationWords = wordSet("send", "message", "email", "text")
	searchWords        = wordSet("search", "find", "look", "browse")
	computationWords   = wordSet("calculate", "compute", "math")
)

var (
	greetingWords  = wordSet("hello", "hi", "hey")
	farewellWords  = wordSet("bye", "goodbye", "farewell")
	helpWords      = wordSet("help", "assist", "support")
	gratitudeWords = wordSet("thank", "thanks", "appreciate")
)

// capabilityPhrases are matched as substrings; "what can you do" is not a
// single token.
var capabilityPhrases = []string{"what can you do", "capabilities", "features"}

// appTable maps request keywords to canonical application names. Order is
// significant: the first matching row wins. Safari is the deliberate default
// for anything unmatched — most generic "open ..." requests are
// web-navigable, so a browser is the most useful guess.
var appTable = []struct {
	keywords []string
	name     string
}{
	{[]string{"calc", "calculator", "arithmetic"}, "Calculator"},
	{[]string{"safari", "browser", "web"}, "Safari"},
	{[]string{"chrome"}, "Google Chrome"},
	{[]string{"youtube", "video", "videos"}, "Safari"},
	{[]string{"finder", "file", "folder", "files"}, "Finder"},
	{[]string{"terminal", "cmd"}, "Terminal"},
	{[]string{"note", "notes", "notepad"}, "Notes"},
	{[]string{"message", "messages", "sms", "imessage"}, "Messages"},
	{[]string{"mail", "email"}, "Mail"},
	{[]string{"calendar", "appointment", "schedule", "events"}, "Calendar"},
	{[]string{"music", "itunes", "spotify", "audio"}, "Music"},
	{[]string{"photo", "photos", "pictures", "images"}, "Photos"},
	{[]string{"vscode", "code"}, "Visual Studio Code"},
}

// defaultApp is returned when no keyword matches; see appTable comment.
const defaultApp = "Safari"

// appAlternates is a small static adjacency table consulted when a native
// launch fails. Only the second-ranked entry is ever suggested.
var appAlternates = map[string][]string{
	"Safari":        {"Safari", "Google Chrome", "Firefox"},
	"Google Chrome": {"Google Chrome", "Safari", "Firefox"},
	"Terminal":      {"Terminal", "iTerm"},
	"Notes":         {"Notes", "TextEdit"},
	"TextEdit":      {"TextEdit", "Notes"},
}

// websiteTable maps request keywords to well-known destinations. Checked in
// order so that more specific phrases win.
var websiteTable = []struct {
	keyword string
	name    string
	url     string
}{
	{"youtube", "YouTube", "https://www.youtube.com"},
	{"videos", "YouTube", "https://www.youtube.com"},
	{"facebook", "Facebook", "https://www.facebook.com"},
	{"instagram", "Instagram", "https://www.instagram.com"},
	{"twitter", "Twitter", "https://www.twitter.com"},
	{"tiktok", "TikTok", "https://www.tiktok.com"},
	{"amazon", "Amazon", "https://www.amazon.com"},
	{"ebay", "eBay", "https://www.ebay.com"},
	{"etsy", "Etsy", "https://www.etsy.com"},
	{"google", "Google", "https://www.google.com"},
	{"bing", "Bing", "https://www.bing.com"},
	{"wikipedia", "Wikipedia", "https://www.wikipedia.org"},
	{"reddit", "Reddit", "https://www.reddit.com"},
	{"bbc", "BBC News", "https://www.bbc.com"},
	{"cnn", "CNN", "https://www.cnn.com"},
	{"linkedin", "LinkedIn", "https://www.linkedin.com"},
	{"github", "GitHub", "https://www.github.com"},
	{"gmail", "Gmail", "https://mail.google.com"},
	{"netflix", "Netflix", "https://www.netflix.com"},
	{"spotify", "Spotify", "https://www.spotify.com"},
	{"twitch", "Twitch", "https://www.twitch.tv"},
}

// webEquivalents resolves a web-accessible substitute when an application
// cannot be launched natively.
var webEquivalents = map[string]string{
	"Mail":     "https://mail.google.com",
	"Calendar": "https://calendar.google.com",
	"Music":    "https://open.spotify.com",
	"Photos":   "https://photos.google.com",
	"Notes":    "https://keep.google.com",
	"Messages": "https://web.whatsapp.com",
}

// searchStopWords are stripped when extracting search terms.
var searchStopWords = wordSet("search", "find", "look", "browse", "google", "for")

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
