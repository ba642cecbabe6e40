package auth

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aiko-cli/aiko/config"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type memStore struct{ token string }

func (m *memStore) Token() (string, error)  { return m.token, nil }
func (m *memStore) SetToken(t string) error { m.token = t; return nil }
func (m *memStore) DeleteToken() error      { m.token = ""; return nil }

func freeAddr() string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	defer ln.Close()
	return ln.Addr().String()
}

func get(url string) (int, string) {
	res, err := http.Get(url)
	if err != nil {
		return 0, err.Error()
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func TestListener(t *testing.T) {
	Convey("Given a listener on a free port", t, func() {
		l, err := Listen("127.0.0.1:0")
		So(err, ShouldBeNil)
		base := "http://" + l.Addr()

		Convey("The callback page forwards the fragment", func() {
			code, body := get(base + "/anilist_callback")
			So(code, ShouldEqual, http.StatusOK)
			So(body, ShouldContainSubstring, `fetch("/capture?" + fragment)`)
			So(l.Close(), ShouldBeNil)
		})

		Convey("A captured token is handed to Wait", func() {
			code, body := get(base + "/capture?access_token=abc.def&token_type=Bearer&expires_in=31536000")
			So(code, ShouldEqual, http.StatusOK)
			So(body, ShouldEqual, capturedMessage)

			token, err := l.Wait(context.Background())
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "abc.def")
		})

		Convey("A capture without a token is rejected", func() {
			code, _ := get(base + "/capture?error=access_denied")
			So(code, ShouldEqual, http.StatusBadRequest)
			So(l.Close(), ShouldBeNil)
		})

		Convey("Wait gives up at the deadline and stops the server", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			_, err := l.Wait(ctx)
			So(errors.Is(err, ErrTimeout), ShouldBeTrue)

			code, _ := get(base + "/anilist_callback")
			So(code, ShouldEqual, 0)
		})
	})
}

func TestLogin(t *testing.T) {
	Convey("Given an empty token store", t, func() {
		store := &memStore{}
		addr := freeAddr()

		Convey("Login opens the authorization page and saves the token", func() {
			var opened string
			browser := func(u string) error {
				opened = u
				go get("http://" + addr + "/capture?access_token=xyz&token_type=Bearer")
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			token, err := Login(ctx, store, LoginOptions{ClientID: "24329", Addr: addr, Browser: browser})
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "xyz")
			So(store.token, ShouldEqual, "xyz")
			So(opened, ShouldStartWith, "https://anilist.co/api/v2/oauth/authorize?")
			So(opened, ShouldContainSubstring, "client_id=24329")
			So(opened, ShouldContainSubstring, "response_type=token")
		})

		Convey("Login is skipped when a token exists", func() {
			store.token = "existing"
			token, err := Login(context.Background(), store, LoginOptions{Addr: addr, Browser: func(string) error {
				return errors.New("should not open")
			}})
			So(errors.Is(err, ErrAlreadyAuthenticated), ShouldBeTrue)
			So(token, ShouldEqual, "existing")
		})

		Convey("Logout clears the token", func() {
			store.token = "existing"
			So(Logout(store), ShouldBeNil)
			So(store.token, ShouldBeEmpty)
		})
	})
}

func TestConfigStore(t *testing.T) {
	Convey("ConfigStore keeps the token in the settings file", t, func() {
		s := config.New(viper.New(), afero.NewMemMapFs(), "/config/aiko.toml")
		store := StoreFor(s, false)

		So(store.SetToken("abc"), ShouldBeNil)
		So(s.Settings().Token, ShouldEqual, "abc")
		So(TokenFunc(store)(), ShouldEqual, "abc")

		So(store.DeleteToken(), ShouldBeNil)
		token, err := store.Token()
		So(err, ShouldBeNil)
		So(token, ShouldBeEmpty)

		So(strings.HasPrefix(AuthorizeURL("1"), "https://"), ShouldBeTrue)
	})
}
