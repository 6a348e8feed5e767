/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package grpc publishes relay liveness over grpc.health.v1.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

const (
	gracefulStopTimeout = 5 * time.Second
)

// HealthServer serves the standard health service and nothing else.
type HealthServer struct {
	addr   string
	srv    *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
	services map[string]bool
}

// NewHealthServer creates a health server for addr. Nothing is bound until
// Listen or Start.
func NewHealthServer(addr string) *HealthServer {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryInterceptor),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle: 10 * time.Minute,
			Time:              2 * time.Minute,
			Timeout:           20 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	// grpcurl support
	reflection.Register(srv)

	return &HealthServer{
		addr:     addr,
		srv:      srv,
		health:   hs,
		services: make(map[string]bool),
	}
}

// SetServing reports service as SERVING or NOT_SERVING.
func (s *HealthServer) SetServing(service string, serving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.services[service] = serving
	s.health.SetServingStatus(service, servingStatus(serving))
}

// Serving reports the last status set for service.
func (s *HealthServer) Serving(service string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	serving, ok := s.services[service]
	if !ok {
		return false, fmt.Errorf("%w: %s", errUnknownCheck, service)
	}

	return serving, nil
}

func servingStatus(serving bool) healthpb.HealthCheckResponse_ServingStatus {
	if serving {
		return healthpb.HealthCheckResponse_SERVING
	}

	return healthpb.HealthCheckResponse_NOT_SERVING
}

// Listen binds the address so a failure surfaces before any service starts.
func (s *HealthServer) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return errAlreadyBound
	}

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.listener = lis

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *HealthServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Start serves until Stop is called, binding first if needed.
func (s *HealthServer) Start() error {
	if s.Addr() == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	lis := s.listener
	s.mu.Unlock()

	log.Printf("gRPC health server listening on %s", lis.Addr())

	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("health server: %w", err)
	}

	return nil
}

// Stop flips every service to NOT_SERVING and stops the server, forcing it
// down if ctx ends or the graceful stop takes too long.
func (s *HealthServer) Stop(ctx context.Context) {
	s.mu.Lock()
	for service := range s.services {
		s.services[service] = false
	}
	s.mu.Unlock()

	s.health.Shutdown()

	stopped := make(chan struct{})

	go func() {
		s.srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		log.Printf("gRPC health server stopped")
	case <-ctx.Done():
		log.Printf("gRPC health server shutdown canceled, forcing stop")
		s.srv.Stop()
	case <-time.After(gracefulStopTimeout):
		log.Printf("gRPC health server shutdown timed out, forcing stop")
		s.srv.Stop()
	}
}

// unaryInterceptor logs each call and turns handler panics into errors.
func unaryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (resp interface{}, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in %s: %v", info.FullMethod, r)

			resp, err = nil, errInternalError
		}

		log.Printf("gRPC call: %s Duration: %v Error: %v", info.FullMethod, time.Since(start), err)
	}()

	return handler(ctx, req)
}
