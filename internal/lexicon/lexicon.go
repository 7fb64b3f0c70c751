// Package lexicon holds the vocabulary the fingerprint extractor matches
// against: company/person/product name lists, action verbs and the synonym
// table collapsing them into concepts. The vocabulary is data, not logic —
// it ships with a built-in default and can be replaced from a YAML file
// without touching the matching code.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon is the full lookup vocabulary for entity/action extraction.
type Lexicon struct {
	Companies      []string `yaml:"companies"`
	Persons        []string `yaml:"persons"`
	Products       []string `yaml:"products"`
	TechTerms      []string `yaml:"tech_terms"`
	FinancialTerms []string `yaml:"financial_terms"`
	// Actions are surface verbs recorded as raw actions. A verb present in
	// Synonyms additionally contributes its canonical concept.
	Actions  []string          `yaml:"actions"`
	Synonyms map[string]string `yaml:"synonyms"`
}

// LoadFile reads a YAML vocabulary. Lists omitted in the file fall back to
// the built-in default, so a deployment can override just one table.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	lex := Default()
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	return lex, nil
}

// Default returns the built-in bilingual vocabulary covering the AI industry
// names and verbs the digest tracks.
func Default() *Lexicon {
	return &Lexicon{
		Companies: []string{
			// English
			"OpenAI", "Anthropic", "Google", "Meta", "Microsoft", "NVIDIA", "Amazon",
			"Apple", "Intel", "AMD", "Salesforce", "Adobe", "IBM", "Oracle", "DeepMind",
			"Stability AI", "Hugging Face", "Midjourney", "Runway", "Character.AI",
			"Cohere", "Inflection", "xAI", "Perplexity", "Scale AI", "Databricks",
			"Snowflake", "Pinecone", "Weaviate", "LangChain", "LlamaIndex", "Mistral AI",
			"Tesla", "Samsung",
			// Chinese
			"字节跳动", "阿里巴巴", "阿里", "腾讯", "百度", "华为", "小米", "美团", "京东",
			"网易", "快手", "拼多多", "商汤", "旷视", "科大讯飞", "讯飞", "智谱",
			"月之暗面", "MiniMax", "零一万物", "百川智能", "面壁智能", "深度求索",
			"DeepSeek", "第四范式", "智源研究院", "清华", "北大", "中科院",
			"MIT", "斯坦福", "微软", "英伟达",
		},
		Persons: []string{
			"Sam Altman", "Greg Brockman", "Ilya Sutskever", "Andrej Karpathy",
			"Demis Hassabis", "Shane Legg", "Mustafa Suleyman", "Yann LeCun",
			"Yoshua Bengio", "Geoffrey Hinton", "Andrew Ng", "Fei-Fei Li", "Jeff Dean",
			"Kai-Fu Lee", "李飞飞", "Karpathy", "Altman", "Sutskever", "Hassabis",
			"LeCun", "Bengio", "Hinton", "Elon Musk", "Musk", "Satya Nadella",
			"Sundar Pichai", "Mark Zuckerberg", "Jensen Huang", "黄仁勋",
			"Dario Amodei", "Daniela Amodei", "Noam Shazeer", "Aidan Gomez",
			"John Doe",
		},
		Products: []string{
			"GPT-5", "GPT-4", "GPT-4o", "Claude 3", "Claude 4", "Gemini 3", "Gemini 2.5",
			"Gemini Pro", "Llama 3", "Llama 4", "Mixtral", "Phi-4", "Stable Diffusion",
			"DALL-E 3", "Sora", "Whisper", "Assistants API", "vLLM", "TensorRT",
			"PyTorch", "TensorFlow", "JAX", "Transformers", "BERT", "T5", "PaLM",
			"LLaMA", "Falcon", "Qwen", "Baichuan", "ChatGLM", "InternLM", "Yi",
			"文心一言", "通义千问", "讯飞星火", "混元", "豆包", "Kimi",
		},
		TechTerms: []string{
			"论文", "arXiv", "模型", "架构", "算法", "训练", "推理", "微调", "对齐",
			"幻觉", "基准", "评测", "SOTA", "准确率", "参数", "数据集", "知识图谱",
			"多模态", "NLP", "LLM", "大模型", "AGI", "神经网络", "深度学习", "机器学习",
			"强化学习", "RLHF", "DPO", "注意力", "Attention", "Transformer", "Diffusion",
			"扩散模型", "GAN", "NeRF", "生成式", "paper", "benchmark", "fine-tuning",
			"reasoning", "multimodal", "embedding",
		},
		FinancialTerms: []string{
			"种子轮", "天使轮", "A轮", "B轮", "C轮", "D轮", "Pre-IPO", "IPO", "定增",
			"并购", "M&A", "估值", "seed round", "Series A", "Series B", "Series C",
			"valuation",
		},
		Actions: []string{
			// Roles and unmapped event words stay raw-only.
			"创始人", "CEO", "CTO", "首席", "总裁", "副总裁", "负责人",
			"founder", "chief executive",
			// Chinese surface verbs (mapped via Synonyms below)
			"加入", "加盟", "入职", "回归", "重返", "招聘", "聘请", "任命", "招募",
			"离职", "离开", "退出", "解雇", "开除", "罢免", "解聘", "辞退", "裁员",
			"收购", "并购", "合并", "吞并",
			"投资", "融资", "募资", "筹资",
			"发布", "推出", "上线", "开源", "开放", "公测", "内测",
			"更新", "升级", "迭代", "修复", "优化", "改进",
			"合作", "联手", "结盟", "联盟",
			"起诉", "诉讼", "被告", "原告", "禁令", "处罚", "罚款",
			"监管", "审查", "调查",
			"突破", "创新", "完成", "达成", "实现",
			// English surface verbs
			"hire", "hires", "hired", "hiring", "join", "joins", "joined", "appoint",
			"appoints", "recruit", "recruits", "recruited", "rejoin", "rejoins",
			"leave", "leaves", "depart", "departs", "resign", "resigns", "fired",
			"ousted", "laid off", "steps down",
			"acquire", "acquires", "acquired", "acquisition", "merge", "merges",
			"merger", "buyout",
			"invest", "invests", "investment", "raise", "raises", "raised", "funding",
			"release", "releases", "released", "launch", "launches", "launched",
			"unveil", "unveils", "unveiled", "debut", "debuts", "open-source",
			"open-sources", "open sourced",
			"update", "updates", "upgrade", "upgrades",
			"partner", "partners", "partnership", "alliance",
			"sue", "sues", "sued", "lawsuit", "litigation", "injunction", "fine",
			"fines", "fined",
			"regulate", "regulates", "probe", "investigate", "investigates",
			"investigation",
			"breakthrough", "achieve", "achieves", "achieved", "complete",
			"completes", "completed",
		},
		Synonyms: map[string]string{
			// 雇佣/加入
			"加入": "hire", "加盟": "hire", "入职": "hire", "回归": "hire", "重返": "hire",
			"招聘": "hire", "聘请": "hire", "任命": "hire", "招募": "hire",
			"hire": "hire", "hires": "hire", "hired": "hire", "hiring": "hire",
			"join": "hire", "joins": "hire", "joined": "hire", "appoint": "hire",
			"appoints": "hire", "recruit": "hire", "recruits": "hire",
			"recruited": "hire", "rejoin": "hire", "rejoins": "hire",
			// 离职/解雇
			"离职": "leave", "离开": "leave", "退出": "leave", "解雇": "leave",
			"开除": "leave", "罢免": "leave", "解聘": "leave", "辞退": "leave",
			"裁员": "leave",
			"leave": "leave", "leaves": "leave", "depart": "leave", "departs": "leave",
			"resign": "leave", "resigns": "leave", "fired": "leave", "ousted": "leave",
			"laid off": "leave", "steps down": "leave",
			// 收购
			"收购": "acquire", "并购": "acquire", "合并": "acquire", "吞并": "acquire",
			"acquire": "acquire", "acquires": "acquire", "acquired": "acquire",
			"acquisition": "acquire", "merge": "acquire", "merges": "acquire",
			"merger": "acquire", "buyout": "acquire",
			// 投资
			"投资": "invest", "融资": "invest", "募资": "invest", "筹资": "invest",
			"invest": "invest", "invests": "invest", "investment": "invest",
			"raise": "invest", "raises": "invest", "raised": "invest",
			"funding": "invest",
			// 发布
			"发布": "release", "推出": "release", "上线": "release", "开源": "release",
			"开放": "release", "公测": "release", "内测": "release",
			"release": "release", "releases": "release", "released": "release",
			"launch": "release", "launches": "release", "launched": "release",
			"unveil": "release", "unveils": "release", "unveiled": "release",
			"debut": "release", "debuts": "release", "open-source": "release",
			"open-sources": "release", "open sourced": "release",
			// 更新
			"更新": "update", "升级": "update", "迭代": "update", "修复": "update",
			"优化": "update", "改进": "update",
			"update": "update", "updates": "update", "upgrade": "update",
			"upgrades": "update",
			// 合作
			"合作": "coop", "联手": "coop", "结盟": "coop", "联盟": "coop",
			"partner": "coop", "partners": "coop", "partnership": "coop",
			"alliance": "coop",
			// 法律
			"起诉": "sue", "诉讼": "sue", "被告": "sue", "原告": "sue", "禁令": "sue",
			"处罚": "sue", "罚款": "sue",
			"sue": "sue", "sues": "sue", "sued": "sue", "lawsuit": "sue",
			"litigation": "sue", "injunction": "sue", "fine": "sue", "fines": "sue",
			"fined": "sue",
			// 监管
			"监管": "regulate", "审查": "regulate", "调查": "regulate",
			"regulate": "regulate", "regulates": "regulate", "probe": "regulate",
			"investigate": "regulate", "investigates": "regulate",
			"investigation": "regulate",
			// 其他
			"突破": "breakthrough", "创新": "breakthrough", "breakthrough": "breakthrough",
			"完成": "achieve", "达成": "achieve", "实现": "achieve",
			"achieve": "achieve", "achieves": "achieve", "achieved": "achieve",
			"complete": "achieve", "completes": "achieve", "completed": "achieve",
		},
	}
}
