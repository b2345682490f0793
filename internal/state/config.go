package state

import (
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/vender-candy/currency"
	"github.com/temoto/vender-candy/helpers"
	"github.com/temoto/vender-candy/internal/catalog"
	"github.com/temoto/vender-candy/internal/tele"
	"github.com/temoto/vender-candy/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Catalog struct {
		Items []*CatalogItem `hcl:"item"`
	} `hcl:"catalog"`
	Money struct {
		// decimal strings, largest first
		Denominations []string `hcl:"denominations"`
	} `hcl:"money"`
	Tele tele.Config `hcl:"tele"`
	UI   struct {
		CurrencySign string `hcl:"currency_sign"`
		LogDebug     bool   `hcl:"log_debug"`
	} `hcl:"ui"`
}

type CatalogItem struct {
	Name      string `hcl:"name,key"`
	XXX_Price string `hcl:"price"` // use parsed `Price`, this is for decoding config only

	Price currency.Amount `hcl:"-"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

const DefaultCurrencySign = "€"

// CatalogItems parses prices, empty catalog section gives nil.
func (c *Config) CatalogItems() ([]catalog.Item, error) {
	if len(c.Catalog.Items) == 0 {
		return nil, nil
	}
	items := make([]catalog.Item, 0, len(c.Catalog.Items))
	errs := make([]error, 0)
	for _, x := range c.Catalog.Items {
		price, err := currency.ParseAmount(x.XXX_Price)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config: catalog item=%s price", x.Name))
			continue
		}
		x.Price = price
		items = append(items, catalog.Item{Name: x.Name, Price: x.Price})
	}
	return items, helpers.FoldErrors(errs)
}

func (c *Config) BuildCatalog() (*catalog.Catalog, error) {
	items, err := c.CatalogItems()
	if err != nil {
		return nil, err
	}
	if items == nil {
		return catalog.Default(), nil
	}
	cat, err := catalog.New(items...)
	return cat, errors.Annotate(err, "config: catalog")
}

func (c *Config) BuildDenominations() (currency.Denominations, error) {
	if len(c.Money.Denominations) == 0 {
		return currency.DefaultDenominations(), nil
	}
	d, err := currency.ParseDenominations(c.Money.Denominations)
	return d, errors.Annotate(err, "config: money.denominations")
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s", source.Name)
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		return nil, errors.Errorf("code error ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		if err := osfs.SetBase(dir); err != nil {
			return nil, err
		}
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	c.setDefaults()
	return c, helpers.FoldErrors(errs)
}

// DefaultConfig is used when no config file exists: stock catalog and coins, telemetry off.
func DefaultConfig() *Config {
	c := &Config{includeSeen: make(map[string]struct{})}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.UI.CurrencySign == "" {
		c.UI.CurrencySign = DefaultCurrencySign
	}
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
