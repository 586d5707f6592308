// Package logger builds *slog.Logger instances for the service.
//
// Production and staging log JSON at info level; development logs text at
// debug level. Request-scoped values are injected at log time by context
// extractors, so handlers only need to pass their request context:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "leadhub"),
//		logger.WithContextExtractors(requestid.Extractor()),
//	)
//	log.InfoContext(ctx, "inquiry stored", logger.LeadID(lead.ID))
//
// The attribute helpers keep key names consistent across packages and return
// an empty attribute for nil values, which slog drops.
package logger
