package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/propostas-backend/internal/render"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "propostas-cli",
		Short: "Renderização de modelos de proposta pela linha de comando",
		Long: `propostas-cli renderiza modelos de documento com as mesmas variáveis
usadas pela API ({{cliente_nome}}, {{valor_total}}, {{servicos_tabela}} ...).

Exemplos:
  propostas-cli render --template proposta.html --data dados.yaml
  propostas-cli tokens`,
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newTokensCmd())
	return root
}

type renderOptions struct {
	templatePath string
	dataPath     string
	timezone     string
	outputPath   string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Renderiza um modelo com dados de um arquivo JSON ou YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.outputPath != "" {
				f, err := os.Create(opts.outputPath)
				if err != nil {
					return fmt.Errorf("criar saída: %w", err)
				}
				defer f.Close()
				out = f
			}
			return runRender(opts, out)
		},
	}
	cmd.Flags().StringVarP(&opts.templatePath, "template", "t", "", "arquivo do modelo")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "arquivo de dados (.json, .yaml ou .yml)")
	cmd.Flags().StringVar(&opts.timezone, "tz", "America/Sao_Paulo", "fuso horário das datas")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "arquivo de saída (padrão: stdout)")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func runRender(opts *renderOptions, out io.Writer) error {
	tmpl, err := os.ReadFile(opts.templatePath)
	if err != nil {
		return fmt.Errorf("ler modelo: %w", err)
	}

	var bundle render.Bundle
	if opts.dataPath != "" {
		if bundle, err = loadBundle(opts.dataPath); err != nil {
			return err
		}
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("fuso horário inválido %q: %w", opts.timezone, err)
	}

	_, err = io.WriteString(out, render.New(render.WithLocation(loc)).Render(string(tmpl), bundle))
	return err
}

// loadBundle читает данные шаблона; формат определяется по расширению файла.
func loadBundle(path string) (render.Bundle, error) {
	var b render.Bundle
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("ler dados: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &b)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &b)
	default:
		return b, fmt.Errorf("formato de dados não suportado: %s", filepath.Ext(path))
	}
	if err != nil {
		return b, fmt.Errorf("decodificar %s: %w", filepath.Base(path), err)
	}
	return b, nil
}

func newTokensCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Lista as variáveis disponíveis para modelos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTokens(cmd.OutOrStdout(), render.Category(category))
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "filtra por categoria (cliente, proposta, valores, servicos, outros)")
	return cmd
}

func printTokens(out io.Writer, category render.Category) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tDESCRIÇÃO\tCATEGORIA")
	for _, t := range render.Catalog() {
		if category != "" && t.Category != category {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Token, t.Label, t.Category)
	}
	return w.Flush()
}
