package configutils

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"prreport/internal/pkg/fs"
)

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
	GetInt(string) (int, error)
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

const dotenvFile = ".env"

var mergeConfig = func(in io.Reader, cm configMerger) error {
	return cm.MergeConfig(in)
}

var fileExists = func(filename string, fs fs.Filesystem) error {
	info, err := fs.Stat(filename)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return ErrConfigFileIsDir
	}

	return nil
}

var loadFile = func(filename string, fs fs.Filesystem) (io.Reader, error) {
	err := fileExists(filename, fs)
	if err != nil {
		return nil, err
	}

	f, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}

	return f, nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, fs.OS{})
	if err != nil {
		return err
	}

	return mergeConfig(f, v)
}

// MergeGlobalConfig merges ~/.config/prreport/config.<type> into v,
// trying every supported file type. Missing files are not an error.
func MergeGlobalConfig(v *viper.Viper) error {
	cfgDir, err := homedir.Expand("~/.config/prreport")
	if err != nil {
		return ErrHomeDirNotFound
	}

	filetypes := []string{"yaml", "json", "toml"}
	for _, ft := range filetypes {
		f := filepath.Join(cfgDir, fmt.Sprintf("config.%s", ft))
		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err == nil {
			return nil
		}
		log.Debug().
			Str("path", f).
			Msg("global config not loaded, skipping to next filetype")
	}

	return nil
}

// MergeDotenv merges a .env file from dir into v as env-style keys.
// Missing files are not an error.
func MergeDotenv(v *viper.Viper, dir string) error {
	f := filepath.Join(dir, dotenvFile)
	if err := fileExists(f, fs.OS{}); err != nil {
		return nil
	}

	v.SetConfigType("env")
	err := loadConfig(f, v)
	if err != nil {
		return errors.Wrap(err, "could not parse .env file")
	}

	return nil
}

// Load populates the global viper instance once, from the entry
// point: global config file, then the working directory's .env file,
// then process environment variables on top.
func Load() error {
	v := viper.GetViper()

	if err := MergeGlobalConfig(v); err != nil {
		return err
	}

	wd, err := fs.OS{}.Getwd()
	if err == nil {
		if err := MergeDotenv(v, wd); err != nil {
			return err
		}
	}

	v.AutomaticEnv()

	return nil
}

func GetBoolFlagOrDefault(fs FlagSet, flag string, d bool) bool {
	v, err := fs.GetBool(flag)
	if err != nil {
		return d
	}

	return v
}

func GetStringFlagOrDefault(fs FlagSet, flag, d string) string {
	s, err := fs.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func GetIntFlagOrDefault(fs FlagSet, flag string, d int) int {
	v, err := fs.GetInt(flag)
	if err != nil || v == 0 {
		return d
	}

	return v
}
