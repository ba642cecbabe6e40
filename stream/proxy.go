package stream

import "encoding/base64"

// ProxyURL rewrites url to go through an m3u8 proxy as
// <proxyBase>/<base64(url|referrer)>.m3u8. proxyBase is used verbatim.
// An empty proxyBase returns url.
func ProxyURL(proxyBase, url, referrer string) string {
	if proxyBase == "" {
		return url
	}

	token := base64.StdEncoding.EncodeToString([]byte(url + "|" + referrer))
	return proxyBase + "/" + token + ".m3u8"
}

// SelectSubtitle returns the first captions track that is marked default
// or labelled English.
func SelectSubtitle(tracks []Track) (Track, bool) {
	for _, t := range tracks {
		if t.Kind == "captions" && (t.Default || t.Label == "English") {
			return t, true
		}
	}
	return Track{}, false
}
