package specbump

import (
	"github.com/rtissier/specbump/internal/config"
	"github.com/rtissier/specbump/internal/engine"
	"github.com/rtissier/specbump/internal/header"
	"github.com/rtissier/specbump/internal/source"
)

// Type aliases re-export the internal types as the public API.

type Config = config.Config
type RewriteRule = config.RewriteRule
type Snapshot = header.Snapshot
type FetchPlanStep = source.FetchPlanStep
type PlannedSource = source.PlannedSource
type UpdateOptions = engine.UpdateOptions
type UpdateResult = engine.UpdateResult
type DownloadedSource = engine.DownloadedSource
