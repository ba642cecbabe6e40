package cmd

import (
	"fmt"
	"os"

	"github.com/aiko-cli/aiko/anilist"
	"github.com/aiko-cli/aiko/aniskip"
	"github.com/aiko-cli/aiko/auth"
	"github.com/aiko-cli/aiko/config"
	"github.com/aiko-cli/aiko/feed"
	"github.com/aiko-cli/aiko/icon"
	"github.com/aiko-cli/aiko/internal/cache"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/network"
	"github.com/aiko-cli/aiko/stream"
	"github.com/aiko-cli/aiko/where"
	"github.com/spf13/viper"
)

func tokenStore() auth.TokenStore {
	return auth.StoreFor(config.Current(), viper.GetBool(key.AnilistKeyring))
}

func anilistClient() *anilist.Client {
	return anilist.New(
		network.Client,
		anilist.WithToken(auth.TokenFunc(tokenStore())),
		anilist.WithMediaCache(where.Media()),
	)
}

func homeFeed() *feed.Service {
	return feed.New(anilistClient(), cache.New[[]anilist.Summary]())
}

func streamClient() (*stream.Client, error) {
	store := config.Current()
	api := store.Settings().API
	if api == "" {
		return nil, fmt.Errorf("%s is not set, run: aiko config set %s <url>", key.StreamAPI, key.StreamAPI)
	}
	if !store.IsValid() {
		logger.Warnf("%s or %s is not set, playback urls are not proxied", key.StreamProxy, key.StreamReferrer)
		fmt.Fprintf(os.Stderr, "%s %s or %s is not set, streams may refuse to play\n",
			icon.Get(icon.Warn), key.StreamProxy, key.StreamReferrer)
	}

	http := network.ClientFor(viper.GetBool(key.StreamTLSFingerprint))
	disk := cache.NewDisk(where.Responses(), cache.DiskTTL)
	return stream.NewClient(http, api, stream.WithDiskCache(disk)), nil
}

func streamResolver(c *stream.Client) *stream.Resolver {
	settings := config.Current().Settings()

	var opts []stream.ResolverOption
	if viper.GetBool(key.Aniskip) {
		opts = append(opts, stream.WithSkipFinder(aniskip.Default()))
	}

	return stream.NewResolver(c, settings.Proxy, settings.Referrer, opts...)
}
