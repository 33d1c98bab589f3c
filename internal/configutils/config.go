package configutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mrview/internal/pkg/fs"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LocalConfigFilename = ".mrviewcfg"
	EnvPrefix           = "MRVIEW"
)

type FlagSet interface {
	GetString(string) (string, error)
	GetBool(string) (bool, error)
}

type configMerger interface {
	MergeConfig(io.Reader) error
}

var (
	ErrHomeDirNotFound = errors.New("unable to determine the home directory")
	ErrConfigFileIsDir = errors.New("configuration file is a directory")
)

var filetypes = []string{"yaml", "json", "toml"}

var mergeConfig = func(in io.Reader, cm configMerger) error {
	err := cm.MergeConfig(in)
	if err != nil {
		return err
	}

	return nil
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

	data, err := fs.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return strings.NewReader(string(data)), nil
}

var loadConfig = func(filename string, v *viper.Viper) error {
	f, err := loadFile(filename, fs.OS{})
	if err != nil {
		return err
	}

	return mergeConfig(f, v)
}

var getGlobalConfigDir = func() (string, error) {
	return homedir.Expand("~/.config/mrview")
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "http://localhost:8000")
	v.SetDefault("server.timeout", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.config/mrview/mrview.log")
	v.SetDefault("general.useNerdFontIcons", false)
	v.SetDefault("general.confirmMerge", true)
}

// mergeAnyType tries every supported file type until one parses
func mergeAnyType(v *viper.Viper, filename string) error {
	var err error
	for _, ft := range filetypes {
		v.SetConfigType(ft)
		err = loadConfig(filename, v)
		if err == nil {
			return nil
		}
		log.Debug().
			Str("file", filename).
			Msgf("config loading failed for type %s, skipping to next filetype", ft)
	}

	return err
}

func MergeLocalConfig(v *viper.Viper, path string) error {
	f := filepath.Join(path, LocalConfigFilename)
	if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return errors.Wrapf(mergeAnyType(v, f), "could not load %s", f)
}

// DefaultConfig returns a viper instance with the defaults and the
// global configuration file merged in. A missing global file is not an error.
func DefaultConfig() (*viper.Viper, error) {
	cfgDir, err := getGlobalConfigDir()
	if err != nil {
		return nil, ErrHomeDirNotFound
	}

	v := viper.New()
	SetDefaults(v)

	for _, ft := range filetypes {
		f := filepath.Join(cfgDir, fmt.Sprintf("config.%s", ft))
		if fileExists(f, fs.OS{}) != nil {
			continue
		}

		v.SetConfigType(ft)
		err = loadConfig(f, v)
		if err != nil {
			return nil, errors.Wrap(err, "could not load config")
		}

		return v, nil
	}

	return v, nil
}

// LoadEnv reads a .env file from path into the process environment without
// overriding variables that are already set.
func LoadEnv(path string) {
	f := filepath.Join(path, ".env")
	if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("file", f).Msg("cannot load env file")
	}
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadConfigForPath builds the configuration used by every command:
// defaults, global file, local file in path, .env and MRVIEW_* variables.
func LoadConfigForPath(path string) (*viper.Viper, error) {
	v, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	err = MergeLocalConfig(v, path)
	if err != nil {
		return nil, err
	}

	LoadEnv(path)
	bindEnv(v)

	return v, nil
}

// LoadGlobal loads the configuration into the global viper instance. An
// explicit path replaces the global configuration file.
func LoadGlobal(path string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	var v *viper.Viper
	if path != "" {
		v = viper.New()
		SetDefaults(v)
		p, err := homedir.Expand(path)
		if err != nil {
			return err
		}
		if err := mergeAnyType(v, p); err != nil {
			return errors.Wrapf(err, "could not load %s", p)
		}
		LoadEnv(wd)
		bindEnv(v)
	} else {
		v, err = LoadConfigForPath(wd)
		if err != nil {
			return err
		}
	}

	return viper.MergeConfigMap(v.AllSettings())
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
