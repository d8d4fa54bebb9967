package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rediwo/redi-json/config"
	"github.com/rediwo/redi-json/logger"
	"github.com/rediwo/redi-json/rest/types"
	"github.com/rediwo/redi-json/serializer"
	"github.com/rediwo/redi-json/utils"
)

type dumpOptions struct {
	model    string
	id       string
	include  string
	exclude  string
	only     string
	override bool
	limit    int
}

// args converts the comma separated flags into option arguments
func (o dumpOptions) args() types.OptionArgs {
	return types.OptionArgs{
		Include:  utils.SplitList(o.include),
		Exclude:  utils.SplitList(o.exclude),
		Only:     utils.SplitList(o.only),
		Override: o.override,
		Limit:    o.limit,
	}
}

func runDump(ctx context.Context, cfg *config.Config, opts dumpOptions, w io.Writer) error {
	if opts.model == "" {
		return fmt.Errorf("--model is required")
	}

	// Logs go to stderr so stdout stays valid JSON.
	l := logger.NewDefaultLoggerWithWriter("RediJSON", os.Stderr)
	l.SetLevel(logger.ParseLogLevel(cfg.Server.LogLevel))

	store, _, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer store.Close()

	params := opts.args().Params()

	var out any
	if opts.id != "" {
		record, err := store.FindByKey(ctx, opts.model, opts.id)
		if err != nil {
			return err
		}
		if out, err = record.Serialize(nil, params.Options); err != nil {
			return err
		}
	} else {
		records, err := store.List(ctx, opts.model, params.Limit)
		if err != nil {
			return err
		}
		docs := make([]*serializer.Document, len(records))
		for i, record := range records {
			if docs[i], err = record.Serialize(nil, params.Options); err != nil {
				return err
			}
		}
		out = docs
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
