// Package reqctx carries request-scoped metadata through context.Context.
//
// The HTTP request-id middleware stores a RequestMeta for every request;
// services read it back to tag logs:
//
//	ctx = reqctx.WithRequestMeta(ctx, &reqctx.RequestMeta{
//	    RequestID:   "abc-123",
//	    ClientIP:    "192.168.1.1",
//	    RequestedAt: time.Now(),
//	})
//
//	log.InfoContext(ctx, "sent", "request_id", reqctx.RequestIDFromContext(ctx))
//
// Context keys are unexported; access goes through the typed helpers.
package reqctx
