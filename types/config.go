package types

import (
	errs "errors"
	"path/filepath"

	"github.com/oliverisaac/goli"
	"github.com/oliverisaac/notes/locale"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

type Config struct {
	DBPath     string
	ListenAddr string
	LogLevel   logrus.Level
	Lang       language.Tag
}

func ConfigFromEnv(fs afero.Fs) (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.DBPath = goli.DefaultEnv("NOTES_DB_PATH", "notes.db")
	if ret.DBPath == "" {
		retErr = errs.Join(retErr, errors.New("NOTES_DB_PATH must not be empty"))
	} else if exists, err := afero.DirExists(fs, filepath.Dir(ret.DBPath)); err != nil || !exists {
		// Not fatal: the page reports the store as unavailable until the
		// directory shows up.
		logrus.Warnf("Directory for NOTES_DB_PATH %q does not exist", ret.DBPath)
	}

	ret.ListenAddr = goli.DefaultEnv("NOTES_LISTEN_ADDR", ":8080")

	ret.LogLevel, err = logrus.ParseLevel(goli.DefaultEnv("NOTES_LOG_LEVEL", "info"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTES_LOG_LEVEL"))
	}

	ret.Lang, err = language.Parse(goli.DefaultEnv("NOTES_LANG", "fr"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTES_LANG"))
	} else if !locale.IsSupported(ret.Lang) {
		retErr = errs.Join(retErr, errors.Errorf("NOTES_LANG %q is not supported, use fr or en", ret.Lang))
	}

	return ret, retErr
}
