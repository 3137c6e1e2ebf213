package main

import (
	"context"
	"log"
	"net/http"

	"github.com/Ltinterdonato1/BlinkShare/internal/domain"
	"github.com/Ltinterdonato1/BlinkShare/internal/middleware"
	"github.com/Ltinterdonato1/BlinkShare/pkg/authenticator"
	"github.com/Ltinterdonato1/BlinkShare/pkg/router"
	"github.com/Ltinterdonato1/BlinkShare/pkg/ws"
	"github.com/Ltinterdonato1/BlinkShare/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startWsProxy(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	s.hub = ws.NewHub()
	go s.hub.Run()
	s.wsProxyDomain = domain.NewWsProxyDomain(s.hub)

	go s.runHubSubscriber()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ctx := s.newRequestContext(r, w)

		ctx, err := middleware.VerifyUser()(ctx)
		if err == nil {
			err = s.wsProxyDomain.ServeClient(ctx)
		}

		if err != nil {
			if werr := router.WriteJson(w, router.NewErrorResponse(err)); werr != nil {
				log.Println("unable to write json")
			}
		}
	})

	s.server = &http.Server{
		Addr:    s.configs.WsProxyServer.Address(),
		Handler: mux,
	}

	log.Printf("Starting ws proxy on %s\n", s.configs.WsProxyServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) newRequestContext(r *http.Request, w http.ResponseWriter) context.Context {
	ctx := r.Context()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(s.configs.Auth.TokenSecret))
	ctx = xcontext.WithHTTPRequest(ctx, r)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	return ctx
}
